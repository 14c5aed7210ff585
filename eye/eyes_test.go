package eye

import (
	"image/color"
	"testing"
	"time"
)

func newTestEyes() (*Eyes, []color.RGBA) {
	leds := make([]color.RGBA, 2*LEDCount)
	blue := color.RGBA{B: 0xff, A: 0xff}
	return NewEyes(New(leds, 0, blue), New(leds, LEDCount, blue)), leds
}

func TestEyesShareBuffer(t *testing.T) {
	e, leds := newTestEyes()
	e.Happy()
	e.Open()

	left, right := e.Pixels()
	if len(left) != LEDCount || len(right) != LEDCount {
		t.Fatalf("expected %d pixels per eye, got %d/%d", LEDCount, len(left), len(right))
	}
	if leds[DotStart] != Green || leds[LEDCount+DotStart] != Green {
		t.Errorf("expected both dots green, got %v/%v", leds[DotStart], leds[LEDCount+DotStart])
	}
}

func TestEyesConfused(t *testing.T) {
	e, _ := newTestEyes()
	e.Confused()

	if e.Left.PupilSize() != PupilRegular || e.Right.PupilSize() != PupilLarge {
		t.Errorf("expected regular/large pupils, got %s/%s", e.Left.PupilSize(), e.Right.PupilSize())
	}
}

func TestEyesAdvance(t *testing.T) {
	e, _ := newTestEyes()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if e.Advance(now) {
		t.Errorf("expected no frame without an animation")
	}

	e.Right.StartBlink(10 * time.Millisecond)
	if !e.Animating() {
		t.Errorf("expected animating when one eye blinks")
	}
	if !e.Advance(now) {
		t.Errorf("expected a frame when one eye animates")
	}
	if e.Advance(now.Add(5 * time.Millisecond)) {
		t.Errorf("expected no frame before the interval")
	}

	e.ClearAnimation()
	if e.Animating() {
		t.Errorf("expected animations cleared")
	}
}
