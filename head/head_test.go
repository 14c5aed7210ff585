package head

import (
	"image/color"
	"testing"
	"time"

	"github.com/calvinmclean/animatronic"
	"github.com/calvinmclean/animatronic/eye"
	"github.com/calvinmclean/animatronic/motion"
)

type pulseRecorder struct {
	last int16
}

func (p *pulseRecorder) SetMicroseconds(us int16) {
	p.last = us
}

var testStart = time.Date(2025, 10, 31, 20, 0, 0, 0, time.UTC)

func newTestHead(t *testing.T) *Head {
	t.Helper()
	h, err := New(DefaultConfig(), &pulseRecorder{}, &pulseRecorder{}, &pulseRecorder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := testStart
	return h.
		WithSleep(func(time.Duration) {}).
		WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		})
}

func TestNewValidatesLayout(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Config)
		expected string
	}{
		{"Default", func(*Config) {}, ""},
		{"EyesOverlap", func(c *Config) { c.RightEyeStart = 10 }, "invalid config: left eye overlaps right eye"},
		{"MouthOverlap", func(c *Config) { c.MouthStart = 40 }, "invalid config: right eye overlaps mouth"},
		{"Negative", func(c *Config) { c.MouthStart = -1 }, "invalid config: LED ranges must not be negative"},
		{"NoMouth", func(c *Config) { c.MouthCount = 0; c.MouthStart = 0 }, ""},
		{"NoServoDelay", func(c *Config) { c.JawServo = motion.ServoConfig{} }, "invalid config: servo full move delay must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			_, err := New(cfg, &pulseRecorder{}, &pulseRecorder{}, &pulseRecorder{})
			switch {
			case tt.expected == "" && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tt.expected != "" && (err == nil || err.Error() != tt.expected):
				t.Errorf("expected error %q, got %v", tt.expected, err)
			}
		})
	}
}

func TestLEDCount(t *testing.T) {
	h := newTestHead(t)
	if n := len(h.Pixels()); n != 2*eye.LEDCount+8 {
		t.Errorf("expected %d LEDs, got %d", 2*eye.LEDCount+8, n)
	}
}

func TestUpdateReportsChanges(t *testing.T) {
	h := newTestHead(t)

	if h.Update(testStart) {
		t.Errorf("expected nothing to flush before any command")
	}

	h.Open()
	if !h.Update(testStart) {
		t.Errorf("expected a static draw to request a flush")
	}
	if h.Update(testStart) {
		t.Errorf("expected the flush request to be consumed")
	}

	h.Blink()
	if !h.Update(testStart.Add(time.Second)) {
		t.Errorf("expected the first blink frame to request a flush")
	}
}

func TestUpdateAdvancesServos(t *testing.T) {
	h := newTestHead(t)
	h.SetSpeed(50)
	h.TiltRight(20)

	now := testStart
	for range 10 {
		now = now.Add(time.Second)
		h.Update(now)
	}

	// both arms start at 0, so ten steps in they are still climbing towards 510/490
	left, right, _ := h.Positions()
	if left != 10 || right != 10 {
		t.Errorf("expected both arms at 10, got %d/%d", left, right)
	}
}

func TestExpress(t *testing.T) {
	tests := []struct {
		expression animatronic.Expression
		expected   color.RGBA
	}{
		{animatronic.ExpressionAngry, eye.Red},
		{animatronic.ExpressionHappy, eye.Green},
		{animatronic.ExpressionCaution, eye.Yellow},
		{animatronic.ExpressionNeutral, DefaultConfig().EyeColor},
	}

	for _, tt := range tests {
		t.Run(tt.expression.String(), func(t *testing.T) {
			h := newTestHead(t)
			h.Express(animatronic.ExpressionAngry)
			h.Express(tt.expression)

			if h.Expression() != tt.expression {
				t.Errorf("expected expression %s, got %s", tt.expression, h.Expression())
			}
			if c := h.Eyes.Left.Color(); c != tt.expected {
				t.Errorf("expected eye color %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestExpressConfused(t *testing.T) {
	h := newTestHead(t)
	h.Express(animatronic.ExpressionConfused)

	if h.Eyes.Left.PupilSize() != eye.PupilRegular || h.Eyes.Right.PupilSize() != eye.PupilLarge {
		t.Errorf("expected mismatched pupils")
	}

	h.Express(animatronic.ExpressionUnknown)
	if h.Expression() != animatronic.ExpressionConfused {
		t.Errorf("unknown expression should be ignored")
	}

	h.Express(animatronic.ExpressionNeutral)
	if h.Eyes.Left.PupilSize() != eye.PupilRegular || h.Eyes.Right.PupilSize() != eye.PupilRegular {
		t.Errorf("expected neutral to restore regular pupils, got %s/%s",
			h.Eyes.Left.PupilSize(), h.Eyes.Right.PupilSize())
	}
	if c := h.Eyes.Right.Color(); c != DefaultConfig().EyeColor {
		t.Errorf("expected default eye color, got %v", c)
	}
}

func TestJawLightsMouth(t *testing.T) {
	cfg := DefaultConfig()
	h := newTestHead(t)

	h.OpenJaw()
	mouth := h.Pixels()[cfg.MouthStart:]
	for i, c := range mouth {
		if c != cfg.MouthColor {
			t.Errorf("expected mouth LED %d lit, got %v", i, c)
		}
	}

	h.CloseJaw()
	for i, c := range mouth {
		if c != eye.Off {
			t.Errorf("expected mouth LED %d off, got %v", i, c)
		}
	}
}

func TestReset(t *testing.T) {
	h := newTestHead(t)
	h.Express(animatronic.ExpressionAngry)
	h.Dilate()
	h.Eyes.StartColorCycle(eye.ColorCycleFrameInterval, eye.Clockwise)
	h.Extend()

	h.Reset()

	left, right, jaw := h.Positions()
	if left != motion.HalfPosition || right != motion.HalfPosition || jaw != motion.JawClosedPosition {
		t.Errorf("expected level arms and closed jaw, got %d/%d/%d", left, right, jaw)
	}
	if h.Eyes.Animating() {
		t.Errorf("expected animations cancelled")
	}
	if h.Eyes.Left.PupilSize() != eye.PupilRegular || h.Eyes.Left.Color() != DefaultConfig().EyeColor {
		t.Errorf("expected default eyes")
	}
	if h.Expression() != animatronic.ExpressionNeutral {
		t.Errorf("expected neutral expression")
	}
}

func TestSpiralClearsImmediately(t *testing.T) {
	h := newTestHead(t)
	h.Open()
	h.Spiral(true)

	for i, c := range h.Eyes.Left.Pixels() {
		if c != eye.Off {
			t.Fatalf("expected LED %d cleared, got %v", i, c)
		}
	}
	if !h.Update(testStart) {
		t.Errorf("expected flush after spiral start")
	}
}
