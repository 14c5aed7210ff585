// Package motion moves hobby servos on a normalized [0, 1000] position range. Speed 100 writes the target
// pulse immediately. Lower speeds record a target that Advance walks towards one unit at a time.
package motion

import "time"

const (
	PositionMin = 0
	PositionMax = 1000

	SpeedMax = 100

	// maxDelayMult sets the slowest step delay relative to the fastest one
	maxDelayMult = 5
)

// PulseWriter drives one PWM output. tinygo.org/x/drivers/servo.Servo implements it
type PulseWriter interface {
	SetMicroseconds(microseconds int16)
}

// ServoConfig describes a servo model
type ServoConfig struct {
	// MinPulseWidth and MaxPulseWidth bound the pulse in microseconds
	MinPulseWidth int16
	MaxPulseWidth int16
	// FullMoveDelay is how long the servo takes to travel the whole range
	FullMoveDelay time.Duration
	// Inverted maps position 0 to MinPulseWidth instead of MaxPulseWidth
	Inverted bool
}

var (
	// DS3218 is the 20kg servo driving the gimbal arms
	DS3218 = ServoConfig{
		MinPulseWidth: 500,
		MaxPulseWidth: 2500,
		FullMoveDelay: 1800 * time.Millisecond,
	}
	// SG90 is the micro servo driving the jaw
	SG90 = ServoConfig{
		MinPulseWidth: 500,
		MaxPulseWidth: 2400,
		FullMoveDelay: 200 * time.Millisecond,
	}
)

// Servo tracks the motion profile of one servo
type Servo struct {
	writer PulseWriter

	// startPulse is the pulse for position 0, the most counter-clockwise position
	startPulse int
	// endPulse is the pulse for position 1000, the most clockwise position
	endPulse int

	fullMoveDelay time.Duration
	minStepDelay  time.Duration
	maxStepDelay  time.Duration

	position int
	target   int

	speed     int
	stepDelay time.Duration
	lastStep  time.Time

	clock func() time.Time
	sleep func(time.Duration)
}

// NewServo creates a Servo at max speed. The servo is not moved until the first command
func NewServo(writer PulseWriter, cfg ServoConfig) *Servo {
	s := &Servo{
		writer:        writer,
		fullMoveDelay: cfg.FullMoveDelay,
		// One step is 1/1000 of the full move
		minStepDelay: cfg.FullMoveDelay / PositionMax,
		clock:        time.Now,
		sleep:        time.Sleep,
	}
	s.maxStepDelay = s.minStepDelay * maxDelayMult

	// Noninverted positive movement (0 -> 1000) is clockwise
	if cfg.Inverted {
		s.startPulse, s.endPulse = int(cfg.MinPulseWidth), int(cfg.MaxPulseWidth)
	} else {
		s.startPulse, s.endPulse = int(cfg.MaxPulseWidth), int(cfg.MinPulseWidth)
	}

	s.SetSpeed(SpeedMax)
	return s
}

// WithClock replaces the clock used when draining blocking moves
func (s *Servo) WithClock(clock func() time.Time) *Servo {
	s.clock = clock
	return s
}

// WithSleep replaces the sleep used by blocking moves at max speed
func (s *Servo) WithSleep(sleep func(time.Duration)) *Servo {
	s.sleep = sleep
	return s
}

// SetPulseWidth writes a raw pulse width. It does not change the tracked position
func (s *Servo) SetPulseWidth(width int) {
	s.writer.SetMicroseconds(int16(width))
}

// SetTarget moves to pos, clamped to [0, 1000]. At max speed the pulse is written immediately and blocking
// waits for the estimated travel time. Below max speed the move is left to Advance, and blocking drains it.
// Asking for the current position does nothing, so a move in flight keeps its target
func (s *Servo) SetTarget(pos int, blocking bool) {
	pos = clampPosition(pos)
	if pos == s.position {
		return
	}

	if s.speed == SpeedMax {
		s.SetPulseWidth(s.pulseWidth(pos))
		if blocking {
			s.sleep(s.CalcDelay(pos))
		}
		s.position = pos
		s.target = pos
		return
	}

	s.target = pos
	if blocking {
		s.Drain()
	}
}

// Drain calls Advance until the target is reached
func (s *Servo) Drain() {
	for s.Moving() {
		s.Advance(s.clock())
	}
}

// MoveStart writes the position 0 pulse directly
func (s *Servo) MoveStart(blocking bool) {
	s.moveEdge(PositionMin, s.startPulse, blocking)
}

// MoveEnd writes the position 1000 pulse directly
func (s *Servo) MoveEnd(blocking bool) {
	s.moveEdge(PositionMax, s.endPulse, blocking)
}

func (s *Servo) moveEdge(pos, width int, blocking bool) {
	s.SetPulseWidth(width)
	if blocking {
		s.sleep(s.CalcDelay(pos))
	}
	s.position = pos
	s.target = pos
}

// Invert swaps the start and end directions
func (s *Servo) Invert() {
	s.startPulse, s.endPulse = s.endPulse, s.startPulse
}

// CalcDelay estimates the travel time from the current position to newPos
func (s *Servo) CalcDelay(newPos int) time.Duration {
	delta := clampPosition(newPos) - s.position
	if delta < 0 {
		delta = -delta
	}
	return s.fullMoveDelay * time.Duration(delta) / PositionMax
}

func (s *Servo) Position() int {
	return s.position
}

func (s *Servo) Target() int {
	return s.target
}

// SetSpeed sets the speed on [0, 100]. It applies from the next step on
func (s *Servo) SetSpeed(speed int) {
	s.speed = max(0, min(speed, SpeedMax))
	s.stepDelay = s.maxStepDelay - (s.maxStepDelay-s.minStepDelay)*time.Duration(s.speed)/SpeedMax
}

func (s *Servo) Speed() int {
	return s.speed
}

// StepDelay is the minimum time between single-unit steps at the current speed
func (s *Servo) StepDelay() time.Duration {
	return s.stepDelay
}

// Moving reports whether the servo has not reached its target
func (s *Servo) Moving() bool {
	return s.position != s.target
}

// Advance moves one unit towards the target if more than StepDelay has passed since the last step. It never
// moves more than one unit per call, however late the call is
func (s *Servo) Advance(now time.Time) bool {
	if !s.Moving() {
		return false
	}
	if now.Sub(s.lastStep) <= s.stepDelay {
		return false
	}

	if s.position > s.target {
		s.position--
	} else {
		s.position++
	}
	s.SetPulseWidth(s.pulseWidth(s.position))
	s.lastStep = now
	return true
}

// Update advances using the servo's own clock
func (s *Servo) Update() bool {
	return s.Advance(s.clock())
}

// pulseWidth maps a position linearly onto [startPulse, endPulse]
func (s *Servo) pulseWidth(pos int) int {
	return s.startPulse + (s.endPulse-s.startPulse)*pos/PositionMax
}

func clampPosition(pos int) int {
	return max(PositionMin, min(pos, PositionMax))
}
