package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/calvinmclean/animatronic/api"
	"github.com/calvinmclean/animatronic/controller"
)

type ServeCommand struct {
	ConnectionOptions
	Addr string `long:"addr" env:"WEB_ADDR" default:":9099" description:"Address to listen on"`
}

func (c *ServeCommand) Execute(args []string) error {
	cfg := c.config()
	if cfg.SerialPort == "" {
		cfg.SerialPort = controller.SerialPortNone
	}

	ctrl, err := controller.New(cfg)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if ctrl.DryRun() {
		log.Printf("no serial port configured, commands will not be sent")
	}

	gin.SetMode(gin.ReleaseMode)
	r := api.NewEngine()
	api.NewServer(ctrl).SetupRoutes(r)

	log.Printf("serving API on %s", c.Addr)
	return r.Run(c.Addr)
}
