package motion

import (
	"image/color"
	"time"
)

const (
	JawOpenPosition   = 400
	JawClosedPosition = 0

	DefaultLaughCount = 3
)

// Jaw drives the mouth servo and the mouth LEDs, which light up while the mouth is open
type Jaw struct {
	Servo *Servo

	leds         []color.RGBA
	defaultColor color.RGBA
	currentColor color.RGBA
}

// NewJaw uses leds as the mouth pixels. The slice is written in place
func NewJaw(servo *Servo, leds []color.RGBA, defaultColor color.RGBA) *Jaw {
	return &Jaw{
		Servo:        servo,
		leds:         leds,
		defaultColor: defaultColor,
		currentColor: defaultColor,
	}
}

func (j *Jaw) Open(blocking bool) {
	j.Servo.SetTarget(JawOpenPosition, blocking)
	j.fill(j.currentColor)
}

func (j *Jaw) Close(blocking bool) {
	j.Servo.SetTarget(JawClosedPosition, blocking)
	j.fill(color.RGBA{})
}

// Laugh opens and closes the mouth count times, blocking on every move
func (j *Jaw) Laugh(count int) {
	for range count {
		j.Open(true)
		j.Close(true)
	}
}

// SetColor lights the mouth in c
func (j *Jaw) SetColor(c color.RGBA) {
	j.currentColor = c
	j.fill(c)
}

func (j *Jaw) ResetColor() {
	j.SetColor(j.defaultColor)
}

func (j *Jaw) Color() color.RGBA {
	return j.currentColor
}

func (j *Jaw) Pixels() []color.RGBA {
	return j.leds
}

// Reset closes the mouth and waits for it
func (j *Jaw) Reset() {
	j.Close(true)
}

func (j *Jaw) Advance(now time.Time) bool {
	return j.Servo.Advance(now)
}

func (j *Jaw) fill(c color.RGBA) {
	for i := range j.leds {
		j.leds[i] = c
	}
}
