package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/calvinmclean/animatronic"
)

// controllerWrapper turns panel actions into protocol lines for the controller to send
type controllerWrapper struct {
	writer io.Writer
	idle   *idleTimer

	// onSend is called with the last line of every batch
	onSend func(line string)
}

func (c *controllerWrapper) Send(cmd []byte) {
	c.SendAll(cmd)
}

// SendAll writes each command on its own line and restarts the idle timer once
func (c *controllerWrapper) SendAll(cmds ...[]byte) {
	if len(cmds) == 0 {
		return
	}

	c.idle.Reset(time.Now())
	for _, cmd := range cmds {
		fmt.Fprintf(c.writer, "%s%c", cmd, animatronic.TerminationChar)
	}

	if c.onSend != nil {
		c.onSend(string(cmds[len(cmds)-1]))
	}
}

func (c *controllerWrapper) SetSpeed(value float64) {
	c.Send(animatronic.SpeedCommand(int(value)))
}

func (c *controllerWrapper) RunStateCommand(s state) {
	c.SendAll(s.commands()...)
}
