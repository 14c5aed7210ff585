package device

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// ServoConfig has device-level values for setting up a single Servo
type ServoConfig struct {
	Pin machine.Pin
	PWM servo.PWM
}

// ArmConfig sets up both gimbal servos on one PWM peripheral so they share a period
type ArmConfig struct {
	PWM      servo.PWM
	LeftPin  machine.Pin
	RightPin machine.Pin
}

// StripConfig is the data pin of the WS2812 strip chaining the eyes and mouth
type StripConfig struct {
	Pin machine.Pin
}
