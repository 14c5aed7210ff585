package motion

import "time"

// ExtendDirection is the rotation of the left servo that extends the actuator
type ExtendDirection int

const (
	Clockwise ExtendDirection = iota
	CounterClockwise
)

// Named actuator positions
const (
	RetractPosition = 0
	HalfPosition    = 500
	ExtendPosition  = 950
	UnloadPosition  = 1000

	BounceHeight      = 100
	ShakeOffset       = 100
	DefaultShakeCount = 1
)

// Actuator is a gimbal driven by two servos moving together. A positive position on either servo extends
// its side of the gimbal
type Actuator struct {
	Left  *Servo
	Right *Servo

	clock func() time.Time
	sleep func(time.Duration)
}

// NewActuator inverts one of the servos so that both extend with increasing position. Both servos should
// be configured noninverted
func NewActuator(left, right *Servo, leftDir ExtendDirection) *Actuator {
	if leftDir == Clockwise {
		right.Invert()
	} else {
		left.Invert()
	}

	return &Actuator{
		Left:  left,
		Right: right,
		clock: time.Now,
		sleep: time.Sleep,
	}
}

func (a *Actuator) WithClock(clock func() time.Time) *Actuator {
	a.clock = clock
	return a
}

func (a *Actuator) WithSleep(sleep func(time.Duration)) *Actuator {
	a.sleep = sleep
	return a
}

// MoveBoth sets both targets. When blocking, it waits once for whichever side takes longer instead of
// waiting for each side in turn
func (a *Actuator) MoveBoth(leftPos, rightPos int, blocking bool) {
	if !blocking {
		a.Left.SetTarget(leftPos, false)
		a.Right.SetTarget(rightPos, false)
		return
	}

	// immediate moves are estimated before the position changes
	var immediateDelay time.Duration
	if a.Left.Speed() == SpeedMax {
		immediateDelay = max(immediateDelay, a.Left.CalcDelay(leftPos))
	}
	if a.Right.Speed() == SpeedMax {
		immediateDelay = max(immediateDelay, a.Right.CalcDelay(rightPos))
	}

	a.Left.SetTarget(leftPos, false)
	a.Right.SetTarget(rightPos, false)

	start := a.clock()
	now := start
	for a.Moving() {
		now = a.clock()
		a.Advance(now)
	}

	if remaining := immediateDelay - now.Sub(start); remaining > 0 {
		a.sleep(remaining)
	}
}

func (a *Actuator) Retract(blocking bool) {
	a.MoveBoth(RetractPosition, RetractPosition, blocking)
}

func (a *Actuator) Extend(blocking bool) {
	a.MoveBoth(ExtendPosition, ExtendPosition, blocking)
}

func (a *Actuator) Unload(blocking bool) {
	a.MoveBoth(UnloadPosition, UnloadPosition, blocking)
}

func (a *Actuator) ExtendHalf(blocking bool) {
	a.MoveBoth(HalfPosition, HalfPosition, blocking)
}

// Reset always blocks so the gimbal is level before anything else runs
func (a *Actuator) Reset() {
	a.ExtendHalf(true)
}

// TiltRight raises the left side and lowers the right side around the half position
func (a *Actuator) TiltRight(amount int, blocking bool) {
	half := amount / 2
	a.MoveBoth(HalfPosition+half, HalfPosition-half, blocking)
}

// TiltLeft raises the right side and lowers the left side around the half position
func (a *Actuator) TiltLeft(amount int, blocking bool) {
	half := amount / 2
	a.MoveBoth(HalfPosition-half, HalfPosition+half, blocking)
}

// Bounce lifts both sides and returns to where they started. Only the return honors blocking
func (a *Actuator) Bounce(blocking bool) {
	left, right := a.Left.Position(), a.Right.Position()
	a.MoveBoth(left+BounceHeight, right+BounceHeight, true)
	a.MoveBoth(left, right, blocking)
}

// Shake rocks the gimbal side to side count times, starting and ending level
func (a *Actuator) Shake(count int) {
	a.Reset()
	for range count {
		a.MoveBoth(HalfPosition+ShakeOffset, HalfPosition-ShakeOffset, true)
		a.MoveBoth(HalfPosition-ShakeOffset, HalfPosition+ShakeOffset, true)
	}
	a.Reset()
}

func (a *Actuator) SetSpeed(speed int) {
	a.Left.SetSpeed(speed)
	a.Right.SetSpeed(speed)
}

func (a *Actuator) Moving() bool {
	return a.Left.Moving() || a.Right.Moving()
}

// Advance steps both servos and reports whether either moved
func (a *Actuator) Advance(now time.Time) bool {
	left := a.Left.Advance(now)
	right := a.Right.Advance(now)
	return left || right
}
