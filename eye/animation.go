package eye

import "time"

// Default frame intervals
const (
	BlinkFrameInterval      = 75 * time.Millisecond
	ColorCycleFrameInterval = 100 * time.Millisecond
	SpiralFrameInterval     = 50 * time.Millisecond
)

// blinkLastStep is the terminal step for both pupil sizes
const blinkLastStep = 4

// AnimationKind is the discriminant of AnimationState
type AnimationKind int

const (
	AnimationNone AnimationKind = iota
	AnimationBlinking
	AnimationColorCycle
	AnimationSpiralDot
	AnimationSpiralLine
)

func (k AnimationKind) String() string {
	switch k {
	case AnimationBlinking:
		return "Blinking"
	case AnimationColorCycle:
		return "ColorCycle"
	case AnimationSpiralDot:
		return "SpiralDot"
	case AnimationSpiralLine:
		return "SpiralLine"
	default:
		fallthrough
	case AnimationNone:
		return "None"
	}
}

// Direction is the apparent rotation of the outer ring during a color cycle. The inner ring always
// rotates the other way
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

type BlinkPhase struct {
	Step uint8
}

type ColorCyclePhase struct {
	OuterHue       uint8
	InnerHue       uint8
	DotHue         uint8
	OuterDirection Direction
}

type SpiralPhase struct {
	// Position is the next LED to light. It leaves [0, LEDCount) when the spiral is done
	Position int
	// Step is +1 (dot outwards) or -1 (outer ring inwards)
	Step          int
	EraseTrailing bool
}

// AnimationState is the resumable state of the one animation an eye can run. Only the phase matching Kind
// is meaningful
type AnimationState struct {
	Kind          AnimationKind
	Blink         BlinkPhase
	ColorCycle    ColorCyclePhase
	Spiral        SpiralPhase
	FrameInterval time.Duration
}

// Animation returns a copy of the current animation state
func (e *Eye) Animation() AnimationState {
	return e.animation
}

// Animating reports whether Advance has pending frame work
func (e *Eye) Animating() bool {
	return e.animation.Kind != AnimationNone
}

// ClearAnimation cancels any running animation. It is always safe to call
func (e *Eye) ClearAnimation() {
	e.animation = AnimationState{}
}

// StartBlink blinks the eye closed and back open. It assumes the eye is showing the open pose. The
// first frame is drawn by the next Advance
func (e *Eye) StartBlink(frameInterval time.Duration) {
	e.begin(AnimationState{
		Kind:          AnimationBlinking,
		FrameInterval: frameInterval,
	})
}

// StartColorCycle rotates independent hues through the dot, inner and outer rings until cancelled
func (e *Eye) StartColorCycle(frameInterval time.Duration, outerDirection Direction) {
	e.begin(AnimationState{
		Kind: AnimationColorCycle,
		ColorCycle: ColorCyclePhase{
			OuterHue:       0,
			InnerHue:       85,
			DotHue:         170,
			OuterDirection: outerDirection,
		},
		FrameInterval: frameInterval,
	})
}

// StartSpiral walks a pixel through every LED in buffer order, from the dot outwards or the reverse.
// With eraseTrailing a single dot moves, otherwise a line fills the eye. The eye is cleared immediately
func (e *Eye) StartSpiral(frameInterval time.Duration, outwards, eraseTrailing bool) {
	kind := AnimationSpiralLine
	if eraseTrailing {
		kind = AnimationSpiralDot
	}

	spiral := SpiralPhase{Position: 0, Step: 1, EraseTrailing: eraseTrailing}
	if !outwards {
		spiral.Position = LEDCount - 1
		spiral.Step = -1
	}

	e.clear()
	e.begin(AnimationState{
		Kind:          kind,
		Spiral:        spiral,
		FrameInterval: frameInterval,
	})
}

func (e *Eye) begin(state AnimationState) {
	e.animation = state
	e.lastFrame = time.Time{}
}

// Advance draws the next animation frame if one is due and reports whether it drew anything
func (e *Eye) Advance(now time.Time) bool {
	if e.animation.Kind == AnimationNone {
		return false
	}
	if now.Sub(e.lastFrame) < e.animation.FrameInterval {
		return false
	}
	e.lastFrame = now

	switch e.animation.Kind {
	case AnimationBlinking:
		e.advanceBlink()
	case AnimationColorCycle:
		e.advanceColorCycle()
	case AnimationSpiralDot, AnimationSpiralLine:
		e.advanceSpiral()
	}
	return true
}

type blinkState int

const (
	blinkClosing blinkState = iota
	blinkOpening
)

func (e *Eye) advanceBlink() {
	step := e.animation.Blink.Step

	if e.pupilSize == PupilRegular {
		switch step {
		case 0:
			e.blinkStep0(blinkClosing)
		case 1:
			e.blinkStep1(blinkClosing)
		case 2:
			// closed eye holds for one frame
		case 3:
			e.blinkStep1(blinkOpening)
		case 4:
			e.blinkStep0(blinkOpening)
		}
	} else {
		switch step {
		case 0:
			e.Draw(PoseClosed, true)
		case blinkLastStep:
			e.Draw(PoseOpen, true)
		}
	}

	if step >= blinkLastStep {
		e.ClearAnimation()
		return
	}
	e.animation.Blink.Step++
}

// blinkStep0 toggles the top and bottom of the inner ring
func (e *Eye) blinkStep0(s blinkState) {
	c := Off
	if s == blinkOpening {
		c = e.currentColor
	}
	for _, i := range blinkStep0Idxs {
		e.set(i, c)
	}
}

// blinkStep1 toggles the inner ring diagonals. The dot is always lit while closed
func (e *Eye) blinkStep1(s blinkState) {
	c := Off
	if s == blinkOpening {
		c = e.currentColor
	}
	for _, i := range blinkStep1Idxs {
		e.set(i, c)
	}

	if s == blinkClosing {
		e.WriteRing(RingDot, e.currentColor)
	} else if !e.infill {
		e.WriteRing(RingDot, Off)
	}
}

func (e *Eye) advanceColorCycle() {
	cc := &e.animation.ColorCycle

	e.WriteRing(RingDot, hueColor(cc.DotHue))
	e.WriteRing(RingInner, hueColor(cc.InnerHue))
	e.WriteRing(RingOuter, hueColor(cc.OuterHue))

	// uint8 arithmetic wraps the hue wheel in both directions
	cc.DotHue++
	if cc.OuterDirection == Clockwise {
		cc.OuterHue++
		cc.InnerHue--
	} else {
		cc.OuterHue--
		cc.InnerHue++
	}
}

func (e *Eye) advanceSpiral() {
	sp := &e.animation.Spiral

	if sp.Position < 0 || sp.Position >= LEDCount {
		if sp.EraseTrailing {
			e.set(sp.Position-sp.Step, Off)
		}
		e.ClearAnimation()
		return
	}

	e.set(sp.Position, e.currentColor)
	if prev := sp.Position - sp.Step; sp.EraseTrailing && prev >= 0 && prev < LEDCount {
		e.set(prev, Off)
	}
	sp.Position += sp.Step
}
