package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/calvinmclean/animatronic/controller"
	"github.com/calvinmclean/animatronic/ui"
)

type UICommand struct {
	ConnectionOptions
}

func (c *UICommand) Execute(args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	headUI := ui.NewHeadUI()
	cfg := c.config()

	var ctrl *controller.Controller
	connect := func(cfg controller.Config) (io.Writer, error) {
		var err error
		ctrl, err = controller.New(cfg)
		if err != nil {
			return nil, err
		}

		r, w := io.Pipe()

		// read from Stdin also
		go func() {
			io.Copy(w, os.Stdin)
		}()

		go func() {
			defer cancel()
			err := ctrl.Run(ctx, r, io.MultiWriter(os.Stdout, headUI))
			if err != nil {
				log.Printf("controller error: %v", err)
			}
		}()

		return w, nil
	}

	headUI.Run(ctx, &cfg, connect)

	if ctrl != nil {
		return ctrl.Close()
	}
	return nil
}
