package device

import (
	"errors"
	"machine"
	"runtime/interrupt"
	"time"

	"github.com/calvinmclean/animatronic/head"

	"tinygo.org/x/drivers/servo"
	"tinygo.org/x/drivers/ws2812"
)

// Device binds a Head to the servos and LED strip on the board
type Device struct {
	*head.Head

	strip ws2812.Device

	// arms and jaw are kept so the PWM channels stay referenced
	leftArm  servo.Servo
	rightArm servo.Servo
	jaw      servo.Servo
}

// New intializes the servos and LED strip and resets the head into its default position
func New(armCfg ArmConfig, jawCfg ServoConfig, stripCfg StripConfig, headCfg head.Config) (*Device, error) {
	array, err := servo.NewArray(armCfg.PWM)
	if err != nil {
		return nil, errors.New("error creating servo array: " + err.Error())
	}

	leftArm, err := array.Add(armCfg.LeftPin)
	if err != nil {
		return nil, errors.New("error adding left arm servo: " + err.Error())
	}

	rightArm, err := array.Add(armCfg.RightPin)
	if err != nil {
		return nil, errors.New("error adding right arm servo: " + err.Error())
	}

	jaw, err := servo.New(jawCfg.PWM, jawCfg.Pin)
	if err != nil {
		return nil, errors.New("error creating jaw servo: " + err.Error())
	}

	d := &Device{
		leftArm:  leftArm,
		rightArm: rightArm,
		jaw:      jaw,
	}

	d.Head, err = head.New(headCfg, &d.leftArm, &d.rightArm, &d.jaw)
	if err != nil {
		return nil, errors.New("error creating head: " + err.Error())
	}

	stripCfg.Pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.strip = ws2812.New(stripCfg.Pin)

	return d, nil
}

// Update advances every device and writes the LED strip when pixels changed
func (d *Device) Update(now time.Time) {
	if d.Head.Update(now) {
		d.Flush()
	}
}

// Flush writes the LED buffer to the strip. Interrupts are disabled because WS2812 timing is strict
func (d *Device) Flush() {
	state := interrupt.Disable()
	err := d.strip.WriteColors(d.Pixels())
	interrupt.Restore(state)

	if err != nil {
		println("error writing LEDs:", err.Error())
	}
}

func (d *Device) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

func (d *Device) WriteByte(b byte) error {
	return machine.Serial.WriteByte(b)
}
