// Package controller bridges a host to the head firmware over serial. Protocol lines are read from any
// io.Reader and the firmware's log output is copied to an io.Writer
package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/calvinmclean/animatronic"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialPortNone selects the dry-run mode with no hardware attached
const SerialPortNone = "None"

var ErrNoUSBSerial = errors.New("no USB serial ports found")

// Controller sends protocol commands to the head
type Controller struct {
	port io.ReadWriteCloser

	// echo receives sent commands when running without a port
	echo io.Writer

	mu sync.Mutex
}

// New opens the configured serial port
func New(cfg Config) (*Controller, error) {
	if cfg.SerialPort == SerialPortNone {
		return &Controller{}, nil
	}
	if cfg.SerialPort == "" {
		return nil, errors.New("missing serial port")
	}

	baudRate, err := cfg.baudRate()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(cfg.SerialPort, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", cfg.SerialPort, err)
	}

	if cfg.ReadTimeout > 0 {
		err = port.SetReadTimeout(cfg.ReadTimeout)
		if err != nil {
			port.Close()
			return nil, fmt.Errorf("error setting read timeout: %w", err)
		}
	}

	return &Controller{port: port}, nil
}

// NewFromEnv creates a Controller using ConfigFromEnv
func NewFromEnv() (*Controller, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// NewWithPort uses an already open port. A nil port runs without hardware
func NewWithPort(port io.ReadWriteCloser) *Controller {
	return &Controller{port: port}
}

// DryRun reports whether commands are echoed instead of sent
func (c *Controller) DryRun() bool {
	return c.port == nil
}

// Send writes one command followed by the termination character
func (c *Controller) Send(cmd []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := append(append([]byte{}, cmd...), animatronic.TerminationChar)

	if c.DryRun() {
		if c.echo != nil {
			_, err := fmt.Fprintf(c.echo, "> %s", line)
			return err
		}
		return nil
	}

	_, err := c.port.Write(line)
	if err != nil {
		return fmt.Errorf("error writing to serial: %w", err)
	}
	return nil
}

// Run sends each line from r until r ends or ctx is cancelled. Output from the firmware is copied to w
func (c *Controller) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	copyErr := make(chan error, 1)
	if c.DryRun() {
		c.mu.Lock()
		c.echo = w
		c.mu.Unlock()
	} else {
		go func() {
			copyErr <- c.copyOutput(ctx, w)
		}()
	}

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := append([]byte{}, scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-copyErr:
			if err != nil {
				return fmt.Errorf("error reading from serial: %w", err)
			}
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if len(line) == 0 {
				continue
			}

			err := c.Send(line)
			if err != nil {
				return err
			}
		}
	}
}

// copyOutput relies on the port's read timeout to return control so cancellation is noticed
func (c *Controller) copyOutput(ctx context.Context, w io.Writer) error {
	buf := make([]byte, 256)
	for ctx.Err() == nil {
		n, err := c.port.Read(buf)
		if n > 0 {
			_, werr := w.Write(buf[:n])
			if werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) Close() error {
	if c.DryRun() {
		return nil
	}
	return c.port.Close()
}

// GetSerialPorts lists USB serial ports. ErrNoUSBSerial is returned when none are connected
func GetSerialPorts() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var result []string
	for _, port := range ports {
		if port.IsUSB {
			result = append(result, port.Name)
		}
	}

	if len(result) == 0 {
		return nil, ErrNoUSBSerial
	}
	return result, nil
}
