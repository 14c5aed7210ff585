package motion

import (
	"image/color"
	"slices"
	"testing"
	"time"
)

// oneSecondServo makes delays easy to read: one position unit takes one millisecond
var oneSecondServo = ServoConfig{
	MinPulseWidth: 500,
	MaxPulseWidth: 2500,
	FullMoveDelay: time.Second,
}

func newTestActuator(t *testing.T, clockStep time.Duration) (*Actuator, *testWriter, *testWriter, *sleepRecorder) {
	t.Helper()
	lw, rw := &testWriter{}, &testWriter{}
	sr := &sleepRecorder{}

	left := NewServo(lw, oneSecondServo).WithSleep(sr.sleep)
	right := NewServo(rw, oneSecondServo).WithSleep(sr.sleep)
	a := NewActuator(left, right, Clockwise).
		WithSleep(sr.sleep).
		WithClock(testClock(clockStep))
	return a, lw, rw, sr
}

func TestNewActuatorInvertsOneServo(t *testing.T) {
	tests := []struct {
		name          string
		dir           ExtendDirection
		expectedLeft  int16
		expectedRight int16
	}{
		{"LeftClockwise", Clockwise, 500, 2500},
		{"LeftCounterClockwise", CounterClockwise, 2500, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lw, rw := &testWriter{}, &testWriter{}
			a := NewActuator(NewServo(lw, oneSecondServo), NewServo(rw, oneSecondServo), tt.dir)
			a.Unload(false)

			if lw.last() != tt.expectedLeft || rw.last() != tt.expectedRight {
				t.Errorf("expected pulses %d/%d, got %d/%d", tt.expectedLeft, tt.expectedRight, lw.last(), rw.last())
			}
		})
	}
}

func TestMoveBothWaitsForLongerDelay(t *testing.T) {
	a, _, _, sr := newTestActuator(t, time.Second)

	a.MoveBoth(300, 700, true)
	if !slices.Equal(sr.calls, []time.Duration{700 * time.Millisecond}) {
		t.Errorf("expected a single 700ms wait, got %v", sr.calls)
	}
	if a.Left.Position() != 300 || a.Right.Position() != 700 {
		t.Errorf("expected 300/700, got %d/%d", a.Left.Position(), a.Right.Position())
	}
}

func TestMoveBothNonBlocking(t *testing.T) {
	a, _, _, sr := newTestActuator(t, time.Second)
	a.SetSpeed(50)

	a.MoveBoth(10, 20, false)
	if len(sr.calls) != 0 || a.Left.Position() != 0 || !a.Moving() {
		t.Fatalf("expected targets recorded without waiting")
	}

	now := testStart
	for range 20 {
		now = now.Add(time.Second)
		a.Advance(now)
	}
	if a.Moving() || a.Left.Position() != 10 || a.Right.Position() != 20 {
		t.Errorf("expected 10/20 after advancing, got %d/%d", a.Left.Position(), a.Right.Position())
	}
	if a.Advance(now.Add(time.Second)) {
		t.Errorf("expected idle actuator to report no movement")
	}
}

func TestMoveBothDrainsSlowAxes(t *testing.T) {
	a, _, _, sr := newTestActuator(t, time.Second)
	a.SetSpeed(50)

	a.MoveBoth(15, 40, true)
	if a.Moving() || a.Left.Position() != 15 || a.Right.Position() != 40 {
		t.Errorf("expected drained move to 15/40, got %d/%d", a.Left.Position(), a.Right.Position())
	}
	if len(sr.calls) != 0 {
		t.Errorf("expected no sleep while draining, got %v", sr.calls)
	}
}

func TestMoveBothMixedSpeeds(t *testing.T) {
	a, _, _, sr := newTestActuator(t, 10*time.Millisecond)
	a.Right.SetSpeed(50)

	a.MoveBoth(300, 10, true)
	if a.Right.Position() != 10 {
		t.Fatalf("expected right side drained to 10, got %d", a.Right.Position())
	}
	// 100ms of the 300ms immediate move passed while the right side drained
	if !slices.Equal(sr.calls, []time.Duration{200 * time.Millisecond}) {
		t.Errorf("expected remaining 200ms wait, got %v", sr.calls)
	}
}

func TestTilt(t *testing.T) {
	tests := []struct {
		name          string
		tilt          func(*Actuator)
		expectedLeft  int
		expectedRight int
	}{
		{"Right", func(a *Actuator) { a.TiltRight(200, false) }, 600, 400},
		{"Left", func(a *Actuator) { a.TiltLeft(200, false) }, 400, 600},
		{"RightClamped", func(a *Actuator) { a.TiltRight(1400, false) }, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _, _ := newTestActuator(t, time.Second)
			tt.tilt(a)
			if a.Left.Position() != tt.expectedLeft || a.Right.Position() != tt.expectedRight {
				t.Errorf("expected %d/%d, got %d/%d", tt.expectedLeft, tt.expectedRight, a.Left.Position(), a.Right.Position())
			}
		})
	}
}

func TestBounce(t *testing.T) {
	a, lw, _, sr := newTestActuator(t, time.Second)
	a.ExtendHalf(false)
	lw.pulses = nil

	a.Bounce(false)
	if a.Left.Position() != HalfPosition || a.Right.Position() != HalfPosition {
		t.Errorf("expected bounce to return to half, got %d/%d", a.Left.Position(), a.Right.Position())
	}
	if !slices.Equal(sr.calls, []time.Duration{100 * time.Millisecond}) {
		t.Errorf("expected only the lift to block, got %v", sr.calls)
	}
	if len(lw.pulses) != 2 {
		t.Errorf("expected lift and return pulses, got %v", lw.pulses)
	}
}

func TestShake(t *testing.T) {
	a, _, _, sr := newTestActuator(t, time.Second)

	a.Shake(DefaultShakeCount)
	expected := []time.Duration{
		500 * time.Millisecond,
		100 * time.Millisecond,
		200 * time.Millisecond,
		100 * time.Millisecond,
	}
	if !slices.Equal(sr.calls, expected) {
		t.Errorf("expected waits %v, got %v", expected, sr.calls)
	}
	if a.Left.Position() != HalfPosition || a.Right.Position() != HalfPosition {
		t.Errorf("expected shake to end level")
	}
}

func TestJaw(t *testing.T) {
	w := &testWriter{}
	sr := &sleepRecorder{}
	mouth := make([]color.RGBA, 4)
	defaultColor := color.RGBA{G: 0xff, A: 0xff}
	red := color.RGBA{R: 0xff, A: 0xff}

	j := NewJaw(NewServo(w, SG90).WithSleep(sr.sleep), mouth, defaultColor)

	j.Open(false)
	if j.Servo.Position() != JawOpenPosition {
		t.Errorf("expected jaw open at %d, got %d", JawOpenPosition, j.Servo.Position())
	}
	for i, c := range mouth {
		if c != defaultColor {
			t.Errorf("expected mouth LED %d lit, got %v", i, c)
		}
	}

	j.SetColor(red)
	if mouth[0] != red || j.Color() != red {
		t.Errorf("expected mouth to turn red")
	}

	j.Close(false)
	for i, c := range mouth {
		if c != (color.RGBA{}) {
			t.Errorf("expected mouth LED %d off, got %v", i, c)
		}
	}

	j.ResetColor()
	if j.Color() != defaultColor {
		t.Errorf("expected default color after reset")
	}
}

func TestJawLaugh(t *testing.T) {
	sr := &sleepRecorder{}
	j := NewJaw(NewServo(&testWriter{}, SG90).WithSleep(sr.sleep), nil, color.RGBA{})

	j.Laugh(DefaultLaughCount)
	if len(sr.calls) != 2*DefaultLaughCount {
		t.Errorf("expected %d blocking moves, got %d", 2*DefaultLaughCount, len(sr.calls))
	}
	for _, d := range sr.calls {
		if d != 80*time.Millisecond {
			t.Errorf("expected 80ms per jaw move, got %s", d)
		}
	}
	if j.Servo.Position() != JawClosedPosition {
		t.Errorf("expected laugh to end closed")
	}
}
