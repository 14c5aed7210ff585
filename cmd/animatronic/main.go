package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/calvinmclean/animatronic/controller"
)

type Options struct {
	Serial SerialCommand `command:"serial" description:"Forward protocol lines from stdin to the head"`
	UI     UICommand     `command:"ui" description:"Open the control panel"`
	Serve  ServeCommand  `command:"serve" description:"Serve the HTTP API"`
	Sim    SimCommand    `command:"sim" description:"Run a simulated head in the terminal"`
}

// ConnectionOptions are shared by every command that talks to real hardware
type ConnectionOptions struct {
	SerialPort string `long:"port" env:"SERIAL_PORT" description:"Serial port of the head, or None for a dry run"`
	BaudRate   string `long:"baud" env:"BAUD_RATE" default:"115200" description:"Serial baud rate"`
}

func (o ConnectionOptions) config() controller.Config {
	return controller.Config{
		SerialPort:  o.SerialPort,
		BaudRate:    o.BaudRate,
		ReadTimeout: controller.DefaultReadTimeout,
	}
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Animatronic - control the animatronic head over serial"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
