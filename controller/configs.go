package controller

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultBaudRate    = "115200"
	DefaultReadTimeout = 100 * time.Millisecond
)

// Config has the values needed to connect to the head over serial
type Config struct {
	// SerialPort is the device path. SerialPortNone runs without hardware and echoes commands
	SerialPort string
	BaudRate   string
	// ReadTimeout bounds each read from the port so Run can notice cancellation
	ReadTimeout time.Duration
}

// ConfigFromEnv reads SERIAL_PORT, BAUD_RATE and READ_TIMEOUT
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		SerialPort:  os.Getenv("SERIAL_PORT"),
		BaudRate:    os.Getenv("BAUD_RATE"),
		ReadTimeout: DefaultReadTimeout,
	}

	if cfg.BaudRate == "" {
		cfg.BaudRate = DefaultBaudRate
	}

	if timeout := os.Getenv("READ_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
		}
		cfg.ReadTimeout = d
	}

	return cfg, nil
}

func (c Config) baudRate() (int, error) {
	rate, err := strconv.Atoi(c.BaudRate)
	if err != nil {
		return 0, fmt.Errorf("invalid baud rate %q: %w", c.BaudRate, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("invalid baud rate %q", c.BaudRate)
	}
	return rate, nil
}
