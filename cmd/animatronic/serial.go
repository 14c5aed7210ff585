package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/calvinmclean/animatronic/controller"
)

type SerialCommand struct {
	ConnectionOptions
}

func (c *SerialCommand) Execute(args []string) error {
	cfg := c.config()
	if cfg.SerialPort == "" {
		return errors.New("missing serial port: use --port or SERIAL_PORT")
	}

	ctrl, err := controller.New(cfg)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return ctrl.Run(ctx, os.Stdin, os.Stdout)
}
