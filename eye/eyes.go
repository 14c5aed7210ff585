package eye

import (
	"image/color"
	"time"
)

// Eyes fans every operation out to a pair of eyes. There is no ordering between the two
type Eyes struct {
	Left  *Eye
	Right *Eye
}

func NewEyes(left, right *Eye) *Eyes {
	return &Eyes{Left: left, Right: right}
}

func (e *Eyes) each(f func(*Eye)) {
	f(e.Left)
	f(e.Right)
}

func (e *Eyes) Reset()                      { e.each((*Eye).Reset) }
func (e *Eyes) Open()                       { e.each((*Eye).Open) }
func (e *Eyes) Close()                      { e.each((*Eye).Close) }
func (e *Eyes) Squint()                     { e.each((*Eye).Squint) }
func (e *Eyes) Dilate()                     { e.each((*Eye).Dilate) }
func (e *Eyes) Contract()                   { e.each((*Eye).Contract) }
func (e *Eyes) Dead()                       { e.each((*Eye).Dead) }
func (e *Eyes) Rainbow()                    { e.each((*Eye).Rainbow) }
func (e *Eyes) Angry()                      { e.each((*Eye).Angry) }
func (e *Eyes) Happy()                      { e.each((*Eye).Happy) }
func (e *Eyes) Caution()                    { e.each((*Eye).Caution) }
func (e *Eyes) ClearAnimation()             { e.each((*Eye).ClearAnimation) }
func (e *Eyes) SetInfill(hasInfill bool)    { e.each(func(eye *Eye) { eye.SetInfill(hasInfill) }) }
func (e *Eyes) SetColor(c color.RGBA)       { e.each(func(eye *Eye) { eye.SetColor(c) }) }
func (e *Eyes) Draw(p Pose, keepAnim bool)  { e.each(func(eye *Eye) { eye.Draw(p, keepAnim) }) }
func (e *Eyes) StartBlink(d time.Duration)  { e.each(func(eye *Eye) { eye.StartBlink(d) }) }
func (e *Eyes) ResetColor()                 { e.each(func(eye *Eye) { eye.SetColor(eye.defaultColor) }) }
func (e *Eyes) Animating() bool             { return e.Left.Animating() || e.Right.Animating() }
func (e *Eyes) Pixels() (l, r []color.RGBA) { return e.Left.Pixels(), e.Right.Pixels() }

// Confused shows one regular and one large pupil
func (e *Eyes) Confused() {
	e.Left.Contract()
	e.Right.Dilate()
}

func (e *Eyes) StartColorCycle(frameInterval time.Duration, outerDirection Direction) {
	e.each(func(eye *Eye) { eye.StartColorCycle(frameInterval, outerDirection) })
}

func (e *Eyes) StartSpiral(frameInterval time.Duration, outwards, eraseTrailing bool) {
	e.each(func(eye *Eye) { eye.StartSpiral(frameInterval, outwards, eraseTrailing) })
}

// Advance steps both eyes and reports whether either drew a frame
func (e *Eyes) Advance(now time.Time) bool {
	left := e.Left.Advance(now)
	right := e.Right.Advance(now)
	return left || right
}
