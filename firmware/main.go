package main

import (
	"machine"
	"time"

	"github.com/calvinmclean/animatronic/firmware/commands"
	"github.com/calvinmclean/animatronic/firmware/device"
	"github.com/calvinmclean/animatronic/head"
)

// loopInterval keeps the loop from spinning while still stepping servos faster than their minimum step delay
const loopInterval = 500 * time.Microsecond

func main() {
	armCfg := device.ArmConfig{
		PWM:      machine.PWM1,
		LeftPin:  machine.GP2,
		RightPin: machine.GP3,
	}

	jawCfg := device.ServoConfig{
		PWM: machine.PWM2,
		Pin: machine.GP4,
	}

	stripCfg := device.StripConfig{
		Pin: machine.GP16,
	}

	d, err := device.New(armCfg, jawCfg, stripCfg, head.DefaultConfig())
	if err != nil {
		panic(err)
	}

	d.Reset()
	d.Flush()
	d.Start()

	parser := commands.NewParser()
	for {
		parser.Poll(d)
		d.Update(time.Now())
		time.Sleep(loopInterval)
	}
}
