// Package eye drives one LED-ring eye: a center dot, an inner ring and an outer ring. Static poses are
// drawn immediately. Animations are stored as an AnimationState and stepped by Advance from the control loop.
package eye

import (
	"image/color"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	Off    = color.RGBA{}
	Red    = color.RGBA{R: 0xff, A: 0xff}
	Green  = color.RGBA{G: 0xff, A: 0xff}
	Yellow = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
)

// PupilSize selects which pattern tables and blink sequence apply
type PupilSize int

const (
	PupilRegular PupilSize = iota
	PupilLarge
)

func (p PupilSize) String() string {
	if p == PupilLarge {
		return "Large"
	}
	return "Regular"
}

// Ring is one of the three concentric regions of the eye
type Ring int

const (
	RingDot Ring = iota
	RingInner
	RingOuter
)

// Pose is a static drawing
type Pose int

const (
	PoseClear Pose = iota
	PoseFill
	PoseOpen
	PoseClosed
	PoseSquint
	PoseDead
	PoseLookLeft
	PoseLookRight
	PoseLookUp
	PoseLookDown
	PoseRainbow
)

func (p Pose) String() string {
	switch p {
	case PoseClear:
		return "Clear"
	case PoseFill:
		return "Fill"
	case PoseOpen:
		return "Open"
	case PoseClosed:
		return "Closed"
	case PoseSquint:
		return "Squint"
	case PoseDead:
		return "Dead"
	case PoseLookLeft:
		return "LookLeft"
	case PoseLookRight:
		return "LookRight"
	case PoseLookUp:
		return "LookUp"
	case PoseLookDown:
		return "LookDown"
	case PoseRainbow:
		return "Rainbow"
	default:
		return "Unknown"
	}
}

// Eye owns LEDCount pixels of a shared LED buffer, starting at start
type Eye struct {
	leds  []color.RGBA
	start int

	defaultColor color.RGBA
	currentColor color.RGBA
	pupilSize    PupilSize
	infill       bool

	animation AnimationState
	lastFrame time.Time
}

// New creates an Eye drawing into leds[start:start+LEDCount]. The buffer must be large enough to hold
// that range. Nothing is drawn until the first call
func New(leds []color.RGBA, start int, defaultColor color.RGBA) *Eye {
	return &Eye{
		leds:         leds,
		start:        start,
		defaultColor: defaultColor,
		currentColor: defaultColor,
		pupilSize:    PupilRegular,
		infill:       true,
	}
}

// Start returns the index of the eye's first LED in the shared buffer
func (e *Eye) Start() int {
	return e.start
}

// Pixels returns the eye's slice of the shared buffer
func (e *Eye) Pixels() []color.RGBA {
	return e.leds[e.start : e.start+LEDCount]
}

func (e *Eye) Color() color.RGBA {
	return e.currentColor
}

func (e *Eye) PupilSize() PupilSize {
	return e.pupilSize
}

func (e *Eye) Infill() bool {
	return e.infill
}

// Reset restores the default color, regular pupil with infill, and opens the eye
func (e *Eye) Reset() {
	e.currentColor = e.defaultColor
	e.pupilSize = PupilRegular
	e.infill = true
	e.Open()
}

// Draw renders a static pose. Unless keepAnimation is set, any running animation is cancelled first so the
// next Advance cannot paint over the pose
func (e *Eye) Draw(p Pose, keepAnimation bool) {
	if !keepAnimation {
		e.ClearAnimation()
	}

	switch p {
	case PoseClear:
		e.clear()
	case PoseFill:
		e.fill(0, LEDCount, e.currentColor)
	case PoseOpen:
		e.open()
	case PoseClosed:
		e.close()
	case PoseSquint:
		e.squint()
	case PoseDead:
		e.dead()
	case PoseLookLeft:
		e.look(lookLeftIdxs[:], lookLeftLargeIdxs[:])
	case PoseLookRight:
		e.look(lookRightIdxs[:], lookRightLargeIdxs[:])
	case PoseLookUp:
		e.look(lookUpIdxs[:], lookUpLargeIdxs[:])
	case PoseLookDown:
		e.look(lookDownIdxs[:], lookDownLargeIdxs[:])
	case PoseRainbow:
		e.rainbow()
	}
}

func (e *Eye) Clear()     { e.Draw(PoseClear, false) }
func (e *Eye) Fill()      { e.Draw(PoseFill, false) }
func (e *Eye) Open()      { e.Draw(PoseOpen, false) }
func (e *Eye) Close()     { e.Draw(PoseClosed, false) }
func (e *Eye) Squint()    { e.Draw(PoseSquint, false) }
func (e *Eye) Dead()      { e.Draw(PoseDead, false) }
func (e *Eye) LookLeft()  { e.Draw(PoseLookLeft, false) }
func (e *Eye) LookRight() { e.Draw(PoseLookRight, false) }
func (e *Eye) LookUp()    { e.Draw(PoseLookUp, false) }
func (e *Eye) LookDown()  { e.Draw(PoseLookDown, false) }
func (e *Eye) Rainbow()   { e.Draw(PoseRainbow, false) }

// Dilate switches to the large pupil and opens the eye
func (e *Eye) Dilate() {
	e.pupilSize = PupilLarge
	e.Open()
}

// Contract switches to the regular pupil and opens the eye
func (e *Eye) Contract() {
	e.pupilSize = PupilRegular
	e.Open()
}

// SetInfill sets whether the center dot is lit in the open pose and opens the eye
func (e *Eye) SetInfill(hasInfill bool) {
	e.infill = hasInfill
	e.Open()
}

// SetColor changes the current color and opens the eye
func (e *Eye) SetColor(c color.RGBA) {
	e.currentColor = c
	e.Open()
}

func (e *Eye) Angry()   { e.SetColor(Red) }
func (e *Eye) Happy()   { e.SetColor(Green) }
func (e *Eye) Caution() { e.SetColor(Yellow) }

// WriteRing paints a whole region. It is a raw write and leaves the animation state alone
func (e *Eye) WriteRing(ring Ring, c color.RGBA) {
	switch ring {
	case RingDot:
		e.set(DotStart, c)
	case RingInner:
		e.fill(InnerRingStart, InnerRingCount, c)
	case RingOuter:
		e.fill(OuterRingStart, OuterRingCount, c)
	}
}

func (e *Eye) set(i int, c color.RGBA) {
	e.leds[e.start+i] = c
}

func (e *Eye) fill(from, n int, c color.RGBA) {
	for i := from; i < from+n; i++ {
		e.leds[e.start+i] = c
	}
}

func (e *Eye) clear() {
	e.fill(0, LEDCount, Off)
}

func (e *Eye) open() {
	dotColor := Off
	if e.infill {
		dotColor = e.currentColor
	}

	innerColor, outerColor := e.currentColor, Off
	if e.pupilSize == PupilLarge {
		innerColor, outerColor = dotColor, e.currentColor
	}

	e.WriteRing(RingDot, dotColor)
	e.WriteRing(RingInner, innerColor)
	e.WriteRing(RingOuter, outerColor)
}

func (e *Eye) close() {
	e.WriteRing(RingOuter, Off)
	e.WriteRing(RingInner, Off)

	idxs := closedIdxs[:]
	if e.pupilSize == PupilRegular {
		idxs = closedIdxs[closedRegularStart : closedRegularStart+closedRegularSize]
	}
	for _, i := range idxs {
		e.set(i, e.currentColor)
	}
}

func (e *Eye) squint() {
	e.close()
	for _, i := range squintExtIdxs {
		e.set(i, e.currentColor)
	}
}

func (e *Eye) dead() {
	e.clear()
	for _, i := range deadIdxs {
		e.set(i, Red)
	}
}

func (e *Eye) look(idxs, largeIdxs []int) {
	e.clear()
	for _, i := range idxs {
		e.set(i, e.currentColor)
	}
	if e.pupilSize == PupilLarge {
		for _, i := range largeIdxs {
			e.set(i, e.currentColor)
		}
	}
}

// rainbow spreads the hue wheel across every LED from the dot outwards
func (e *Eye) rainbow() {
	const deltaHue = 255 / LEDCount
	for i := range LEDCount {
		e.set(i, hueColor(uint8(i*deltaHue)))
	}
}

// hueColor converts a hue on the 0-255 wheel to a fully saturated, full brightness color
func hueColor(hue uint8) color.RGBA {
	r, g, b := colorful.Hsv(float64(hue)*360/256, 1, 1).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
