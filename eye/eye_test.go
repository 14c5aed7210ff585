package eye

import (
	"image/color"
	"slices"
	"testing"
)

var testColor = color.RGBA{R: 10, G: 20, B: 30, A: 0xff}

func newTestEye(t *testing.T) (*Eye, []color.RGBA) {
	t.Helper()
	leds := make([]color.RGBA, 2*LEDCount)
	return New(leds, LEDCount, testColor), leds
}

// lit returns the indexes of every LED that is not Off
func lit(px []color.RGBA) []int {
	var result []int
	for i, c := range px {
		if c != Off {
			result = append(result, i)
		}
	}
	return result
}

func TestStaticPoses(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Eye)
		pose     Pose
		expected []int
	}{
		{
			"OpenRegularInfill",
			func(e *Eye) {},
			PoseOpen,
			[]int{0, 1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			"OpenRegularHollow",
			func(e *Eye) { e.infill = false },
			PoseOpen,
			[]int{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			"OpenLargeInfill",
			func(e *Eye) { e.pupilSize = PupilLarge },
			PoseOpen,
			[]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
		},
		{
			"OpenLargeHollow",
			func(e *Eye) { e.pupilSize = PupilLarge; e.infill = false },
			PoseOpen,
			[]int{9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
		},
		{
			"ClosedRegular",
			func(e *Eye) {},
			PoseClosed,
			[]int{DotStart, inner(2), inner(6)},
		},
		{
			"ClosedLarge",
			func(e *Eye) { e.pupilSize = PupilLarge },
			PoseClosed,
			[]int{DotStart, inner(2), inner(6), outer(3), outer(9)},
		},
		{
			"Squint",
			func(e *Eye) {},
			PoseSquint,
			[]int{DotStart, inner(0), inner(1), inner(2), inner(6), inner(7)},
		},
		{
			"LookLeftRegular",
			func(e *Eye) {},
			PoseLookLeft,
			[]int{inner(5), inner(6), inner(7), outer(8), outer(9), outer(10)},
		},
		{
			"LookRightLarge",
			func(e *Eye) { e.pupilSize = PupilLarge },
			PoseLookRight,
			[]int{inner(1), inner(2), inner(3), outer(1), outer(2), outer(3), outer(4), outer(5)},
		},
		{
			"Clear",
			func(e *Eye) { e.fill(0, LEDCount, testColor) },
			PoseClear,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEye(t)
			tt.setup(e)
			e.Draw(tt.pose, false)

			got := lit(e.Pixels())
			slices.Sort(tt.expected)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("expected lit=%v, got=%v", tt.expected, got)
			}
		})
	}
}

func TestDeadIsRed(t *testing.T) {
	e, _ := newTestEye(t)
	e.Dead()

	px := e.Pixels()
	if n := len(lit(px)); n != len(deadIdxs) {
		t.Errorf("expected %d lit LEDs, got %d", len(deadIdxs), n)
	}
	for _, i := range deadIdxs {
		if px[i] != Red {
			t.Errorf("expected LED %d to be red, got %v", i, px[i])
		}
	}
}

func TestEyeOnlyWritesItsRange(t *testing.T) {
	e, leds := newTestEye(t)
	e.Draw(PoseFill, false)
	e.StartSpiral(0, true, false)

	for i := range LEDCount {
		if leds[i] != Off {
			t.Fatalf("LED %d outside the eye was written: %v", i, leds[i])
		}
	}
}

func TestStaticDrawCancelsAnimation(t *testing.T) {
	e, _ := newTestEye(t)
	e.Open()
	e.StartColorCycle(ColorCycleFrameInterval, Clockwise)
	e.Advance(testTime(0))

	e.Close()
	if e.Animating() {
		t.Fatalf("expected Close to cancel the animation")
	}
	closed := slices.Clone(e.Pixels())

	if e.Advance(testTime(1000)) {
		t.Errorf("expected no frame after cancel")
	}
	if !slices.Equal(closed, e.Pixels()) {
		t.Errorf("stale animation frame overwrote the closed pose")
	}
}

func TestDrawKeepAnimation(t *testing.T) {
	e, _ := newTestEye(t)
	e.StartColorCycle(ColorCycleFrameInterval, Clockwise)
	e.Draw(PoseClosed, true)

	if e.Animation().Kind != AnimationColorCycle {
		t.Errorf("expected animation to survive, got %s", e.Animation().Kind)
	}
}

func TestColorSettersOpenEye(t *testing.T) {
	tests := []struct {
		name     string
		set      func(*Eye)
		expected color.RGBA
	}{
		{"Angry", (*Eye).Angry, Red},
		{"Happy", (*Eye).Happy, Green},
		{"Caution", (*Eye).Caution, Yellow},
		{"Reset", func(e *Eye) { e.SetColor(Red); e.Reset() }, testColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEye(t)
			e.Close()
			tt.set(e)

			px := e.Pixels()
			if px[DotStart] != tt.expected || px[inner(0)] != tt.expected {
				t.Errorf("expected open eye in %v, got dot=%v inner=%v", tt.expected, px[DotStart], px[inner(0)])
			}
			if px[outer(0)] != Off {
				t.Errorf("expected outer ring off for regular pupil")
			}
		})
	}
}

func TestDilateContractInfill(t *testing.T) {
	e, _ := newTestEye(t)

	e.Dilate()
	if e.PupilSize() != PupilLarge || len(lit(e.Pixels())) != LEDCount {
		t.Errorf("expected large filled pupil")
	}

	e.SetInfill(false)
	if e.Infill() || len(lit(e.Pixels())) != OuterRingCount {
		t.Errorf("expected hollow large pupil to light only the outer ring")
	}

	e.Contract()
	if e.PupilSize() != PupilRegular || len(lit(e.Pixels())) != InnerRingCount {
		t.Errorf("expected hollow regular pupil to light only the inner ring")
	}
}

func TestRainbow(t *testing.T) {
	e, _ := newTestEye(t)
	e.Rainbow()

	px := e.Pixels()
	if px[0] != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected rainbow to start at red, got %v", px[0])
	}
	if px[0] == px[LEDCount-1] {
		t.Errorf("expected rainbow to change hue across the eye")
	}
}

func TestWriteRing(t *testing.T) {
	e, _ := newTestEye(t)
	e.WriteRing(RingOuter, testColor)

	got := lit(e.Pixels())
	if len(got) != OuterRingCount || got[0] != OuterRingStart {
		t.Errorf("expected only outer ring lit, got %v", got)
	}
}
