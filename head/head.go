// Package head wires the eyes, the gimbal actuator and the jaw onto one shared LED buffer and exposes the
// operations the serial command protocol runs
package head

import (
	"errors"
	"image/color"
	"strconv"
	"time"

	"github.com/calvinmclean/animatronic"
	"github.com/calvinmclean/animatronic/eye"
	"github.com/calvinmclean/animatronic/motion"
)

// Config describes where each device lives in the LED strip and which servos drive the head
type Config struct {
	LeftEyeStart  int
	RightEyeStart int
	MouthStart    int
	MouthCount    int

	EyeColor   color.RGBA
	MouthColor color.RGBA

	ArmServo         motion.ServoConfig
	JawServo         motion.ServoConfig
	LeftArmDirection motion.ExtendDirection
}

// DefaultConfig chains the left eye, right eye and mouth on one strip
func DefaultConfig() Config {
	return Config{
		LeftEyeStart:     0,
		RightEyeStart:    eye.LEDCount,
		MouthStart:       2 * eye.LEDCount,
		MouthCount:       8,
		EyeColor:         color.RGBA{R: 0x00, G: 0x60, B: 0xff, A: 0xff},
		MouthColor:       color.RGBA{R: 0xff, G: 0x40, B: 0x00, A: 0xff},
		ArmServo:         motion.DS3218,
		JawServo:         motion.SG90,
		LeftArmDirection: motion.Clockwise,
	}
}

// LEDCount is the length of the buffer needed for this layout
func (c Config) LEDCount() int {
	return max(c.LeftEyeStart+eye.LEDCount, c.RightEyeStart+eye.LEDCount, c.MouthStart+c.MouthCount)
}

func (c Config) validate() error {
	if c.LeftEyeStart < 0 || c.RightEyeStart < 0 || c.MouthStart < 0 || c.MouthCount < 0 {
		return errors.New("LED ranges must not be negative")
	}

	type span struct {
		name       string
		start, end int
	}
	spans := []span{
		{"left eye", c.LeftEyeStart, c.LeftEyeStart + eye.LEDCount},
		{"right eye", c.RightEyeStart, c.RightEyeStart + eye.LEDCount},
		{"mouth", c.MouthStart, c.MouthStart + c.MouthCount},
	}
	for i, a := range spans {
		for _, b := range spans[i+1:] {
			if a.start < b.end && b.start < a.end && a.start != a.end && b.start != b.end {
				return errors.New(a.name + " overlaps " + b.name)
			}
		}
	}

	if c.ArmServo.FullMoveDelay <= 0 || c.JawServo.FullMoveDelay <= 0 {
		return errors.New("servo full move delay must be positive")
	}
	return nil
}

// Head owns every device. It is not safe for concurrent use
type Head struct {
	Eyes     *eye.Eyes
	Actuator *motion.Actuator
	Jaw      *motion.Jaw

	leds       []color.RGBA
	expression animatronic.Expression

	// dirty is set by any operation that changes pixels outside of an animation frame
	dirty bool

	startTime time.Time
	verbose   bool
}

// New creates a Head with a buffer sized for cfg. The writers receive servo pulses for the left arm, right
// arm and jaw
func New(cfg Config, leftArm, rightArm, jaw motion.PulseWriter) (*Head, error) {
	err := cfg.validate()
	if err != nil {
		return nil, errors.New("invalid config: " + err.Error())
	}

	leds := make([]color.RGBA, cfg.LEDCount())

	h := &Head{
		Eyes: eye.NewEyes(
			eye.New(leds, cfg.LeftEyeStart, cfg.EyeColor),
			eye.New(leds, cfg.RightEyeStart, cfg.EyeColor),
		),
		Actuator: motion.NewActuator(
			motion.NewServo(leftArm, cfg.ArmServo),
			motion.NewServo(rightArm, cfg.ArmServo),
			cfg.LeftArmDirection,
		),
		Jaw: motion.NewJaw(
			motion.NewServo(jaw, cfg.JawServo),
			leds[cfg.MouthStart:cfg.MouthStart+cfg.MouthCount],
			cfg.MouthColor,
		),
		leds:       leds,
		expression: animatronic.ExpressionNeutral,
	}

	return h, nil
}

// WithClock replaces the clock used by blocking moves of every servo
func (h *Head) WithClock(clock func() time.Time) *Head {
	h.Actuator.WithClock(clock)
	h.Actuator.Left.WithClock(clock)
	h.Actuator.Right.WithClock(clock)
	h.Jaw.Servo.WithClock(clock)
	return h
}

// WithSleep replaces the sleep used by blocking moves of every servo
func (h *Head) WithSleep(sleep func(time.Duration)) *Head {
	h.Actuator.WithSleep(sleep)
	h.Actuator.Left.WithSleep(sleep)
	h.Actuator.Right.WithSleep(sleep)
	h.Jaw.Servo.WithSleep(sleep)
	return h
}

// Pixels is the whole LED buffer in strip order
func (h *Head) Pixels() []color.RGBA {
	return h.leds
}

func (h *Head) Expression() animatronic.Expression {
	return h.expression
}

// Positions returns the current left arm, right arm and jaw positions
func (h *Head) Positions() (int, int, int) {
	return h.Actuator.Left.Position(), h.Actuator.Right.Position(), h.Jaw.Servo.Position()
}

// Update advances every device by one tick. It reports whether the LED buffer changed and should be flushed
func (h *Head) Update(now time.Time) bool {
	drew := h.Eyes.Advance(now)
	h.Actuator.Advance(now)
	h.Jaw.Advance(now)

	changed := drew || h.dirty
	h.dirty = false
	return changed
}

func (h *Head) draw(f func()) {
	f()
	h.dirty = true
}

func (h *Head) Open()     { h.draw(h.Eyes.Open) }
func (h *Head) Close()    { h.draw(h.Eyes.Close) }
func (h *Head) Squint()   { h.draw(h.Eyes.Squint) }
func (h *Head) Dilate()   { h.draw(h.Eyes.Dilate) }
func (h *Head) Contract() { h.draw(h.Eyes.Contract) }
func (h *Head) Rainbow()  { h.draw(h.Eyes.Rainbow) }

func (h *Head) Dead() {
	h.draw(h.Eyes.Dead)
	if h.verbose {
		println(h.ts(), "Dead")
	}
}

// Look draws one of the look poses on both eyes
func (h *Head) Look(p eye.Pose) {
	h.draw(func() { h.Eyes.Draw(p, false) })
}

func (h *Head) SetInfill(hasInfill bool) {
	h.draw(func() { h.Eyes.SetInfill(hasInfill) })
}

// Express changes the mood shown by the eyes. Neutral restores the default color and regular pupils
func (h *Head) Express(e animatronic.Expression) {
	if h.verbose {
		println(h.ts(), "Express", e.String())
	}

	switch e {
	case animatronic.ExpressionAngry:
		h.draw(h.Eyes.Angry)
	case animatronic.ExpressionHappy:
		h.draw(h.Eyes.Happy)
	case animatronic.ExpressionCaution:
		h.draw(h.Eyes.Caution)
	case animatronic.ExpressionConfused:
		h.draw(h.Eyes.Confused)
	case animatronic.ExpressionNeutral:
		h.draw(func() {
			h.Eyes.Contract()
			h.Eyes.ResetColor()
		})
	default:
		return
	}
	h.expression = e
}

func (h *Head) Blink() {
	h.Eyes.StartBlink(eye.BlinkFrameInterval)
}

func (h *Head) ColorCycle(dir eye.Direction) {
	h.Eyes.StartColorCycle(eye.ColorCycleFrameInterval, dir)
}

// Spiral starts an outward spiral. The eyes are cleared right away
func (h *Head) Spiral(eraseTrailing bool) {
	h.draw(func() { h.Eyes.StartSpiral(eye.SpiralFrameInterval, true, eraseTrailing) })
}

// StopAnimations cancels eye animations and leaves the last frame on the LEDs
func (h *Head) StopAnimations() {
	h.Eyes.ClearAnimation()
}

func (h *Head) Retract()    { h.Actuator.Retract(false) }
func (h *Head) Extend()     { h.Actuator.Extend(false) }
func (h *Head) ExtendHalf() { h.Actuator.ExtendHalf(false) }
func (h *Head) Unload()     { h.Actuator.Unload(false) }
func (h *Head) Bounce()     { h.Actuator.Bounce(false) }

func (h *Head) Shake(count int) {
	if h.verbose {
		println(h.ts(), "Shake", count)
	}
	h.Actuator.Shake(count)
}

func (h *Head) TiltLeft(amount int)  { h.Actuator.TiltLeft(amount, false) }
func (h *Head) TiltRight(amount int) { h.Actuator.TiltRight(amount, false) }

func (h *Head) OpenJaw()  { h.draw(func() { h.Jaw.Open(false) }) }
func (h *Head) CloseJaw() { h.draw(func() { h.Jaw.Close(false) }) }

func (h *Head) Laugh(count int) {
	if h.verbose {
		println(h.ts(), "Laugh", count)
	}
	h.draw(func() { h.Jaw.Laugh(count) })
}

// SetSpeed applies to all servos
func (h *Head) SetSpeed(speed int) {
	if h.verbose {
		println(h.ts(), "SetSpeed", speed)
	}
	h.Actuator.SetSpeed(speed)
	h.Jaw.Servo.SetSpeed(speed)
}

// Reset returns every device to its default state. The servo moves block
func (h *Head) Reset() {
	if h.verbose {
		println(h.ts(), "Reset")
	}
	h.draw(func() {
		h.Eyes.Reset()
		h.Jaw.ResetColor()
		h.Jaw.Reset()
	})
	h.Actuator.Reset()
	h.expression = animatronic.ExpressionNeutral
}

// Start sets the start time used for log timestamps
func (h *Head) Start() {
	h.startTime = time.Now()
	println(h.ts(), "Started...")
}

// Duration returns the duration that this has been running
func (h *Head) Duration() time.Duration {
	return time.Since(h.startTime)
}

// Verbose increases logging
func (h *Head) Verbose() {
	h.verbose = true
	println(h.ts(), "Set Verbose Mode")
}

// Debug prints one line describing the head's state
func (h *Head) Debug() {
	left, right, jaw := h.Positions()
	d := h.ts() + " expression=" + h.expression.String()
	d += " eyes=" + h.Eyes.Left.Animation().Kind.String() + "/" + h.Eyes.Right.Animation().Kind.String()
	d += " pupil=" + h.Eyes.Left.PupilSize().String()
	d += " arms=" + strconv.Itoa(left) + "/" + strconv.Itoa(right)
	d += " jaw=" + strconv.Itoa(jaw)
	d += " speed=" + strconv.Itoa(h.Actuator.Left.Speed())
	println(d)
}

// ts returns the duration timestamp for logging
func (h *Head) ts() string {
	if h.startTime.IsZero() {
		return "[-]"
	}
	return "[" + h.Duration().String() + "]"
}
