// Package ui is a fyne control panel that writes protocol commands for the controller to send
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/animatronic"
	"github.com/calvinmclean/animatronic/controller"
	"github.com/calvinmclean/animatronic/motion"
)

const (
	appID   = "com.calvinmclean.animatronic"
	maxLogs = 200

	// idleWarning highlights the idle timer when the show has not been driven for a while
	idleWarning = 30 * time.Second
)

func createSlider(labelText string, minValue, maxValue, defaultValue float64, onSet func(float64)) *fyne.Container {
	valueLabel := widget.NewLabel(fmt.Sprintf("%.0f", defaultValue))

	slider := widget.NewSlider(minValue, maxValue)
	slider.Step = 1
	slider.SetValue(defaultValue)
	slider.OnChanged = func(value float64) {
		valueLabel.SetText(fmt.Sprintf("%.0f", value))
	}
	slider.OnChangeEnded = onSet

	return container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel(labelText),
			valueLabel,
		),
		slider,
	)
}

// tiltCommand converts a slider value on [-9, 9] into a tilt command. Negative tilts left
func tiltCommand(value float64) []byte {
	amount := int(value)
	direction := byte('R')
	if amount < 0 {
		direction = 'L'
		amount = -amount
	}
	amount = min(amount, 9)
	return animatronic.Command(animatronic.FlagTilt, direction, byte('0'+amount))
}

func buttonGrid(title string, c *controllerWrapper, buttons []commandButton) *widget.Card {
	objects := make([]fyne.CanvasObject, 0, len(buttons))
	for _, b := range buttons {
		cmd := b.cmd
		objects = append(objects, widget.NewButton(b.label, func() { c.Send(cmd) }))
	}
	return widget.NewCard(title, "", container.NewGridWithColumns(4, objects...))
}

type commandButton struct {
	label string
	cmd   []byte
}

var (
	eyeButtons = []commandButton{
		{"Open", animatronic.Command(animatronic.FlagOpen)},
		{"Close", animatronic.Command(animatronic.FlagClose)},
		{"Squint", animatronic.Command(animatronic.FlagSquint)},
		{"Dead", animatronic.Command(animatronic.FlagDead)},
		{"Look Left", animatronic.Command(animatronic.FlagLook, 'L')},
		{"Look Right", animatronic.Command(animatronic.FlagLook, 'R')},
		{"Look Up", animatronic.Command(animatronic.FlagLook, 'U')},
		{"Look Down", animatronic.Command(animatronic.FlagLook, 'D')},
		{"Dilate", animatronic.Command(animatronic.FlagPupil, '+')},
		{"Contract", animatronic.Command(animatronic.FlagPupil, '-')},
	}
	animationButtons = []commandButton{
		{"Blink", animatronic.Command(animatronic.FlagBlink)},
		{"Cycle", animatronic.Command(animatronic.FlagCycle, '+')},
		{"Cycle Reverse", animatronic.Command(animatronic.FlagCycle, '-')},
		{"Spiral Dot", animatronic.Command(animatronic.FlagSpiral, 'D')},
		{"Spiral Line", animatronic.Command(animatronic.FlagSpiral, 'L')},
		{"Stop", animatronic.Command(animatronic.FlagStop)},
	}
	actuatorButtons = []commandButton{
		{"Retract", animatronic.Command(animatronic.FlagActuator, 'R')},
		{"Half", animatronic.Command(animatronic.FlagActuator, 'H')},
		{"Extend", animatronic.Command(animatronic.FlagActuator, 'E')},
		{"Unload", animatronic.Command(animatronic.FlagActuator, 'U')},
		{"Bounce", animatronic.Command(animatronic.FlagActuator, 'B')},
		{"Shake", animatronic.Command(animatronic.FlagActuator, 'S')},
	}
	jawButtons = []commandButton{
		{"Open", animatronic.Command(animatronic.FlagJaw, 'O')},
		{"Close", animatronic.Command(animatronic.FlagJaw, 'C')},
		{"Laugh", animatronic.Command(animatronic.FlagJaw, 'L')},
	}
)

// HeadUI is the control panel. It implements io.Writer so device output can be shown in the log
type HeadUI struct {
	mtx        sync.Mutex
	logs       []string
	logContent *widget.Label
}

func NewHeadUI() *HeadUI {
	return &HeadUI{}
}

// Write appends device output to the log
func (ui *HeadUI) Write(p []byte) (int, error) {
	ui.mtx.Lock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\r\n"), "\n") {
		ui.logs = append(ui.logs, strings.TrimRight(line, "\r"))
	}
	if len(ui.logs) > maxLogs {
		ui.logs = ui.logs[len(ui.logs)-maxLogs:]
	}
	text := strings.Join(ui.logs, "\n")
	label := ui.logContent
	ui.mtx.Unlock()

	if label != nil {
		fyne.Do(func() {
			label.SetText(text)
		})
	}
	return len(p), nil
}

func (ui *HeadUI) createLogAccordion() *widget.Accordion {
	ui.mtx.Lock()
	ui.logContent = widget.NewLabel(strings.Join(ui.logs, "\n"))
	logScroll := container.NewVScroll(ui.logContent)
	ui.mtx.Unlock()

	logScroll.SetMinSize(fyne.NewSize(300, 100))

	return widget.NewAccordion(
		widget.NewAccordionItem("Logs", logScroll),
	)
}

// Run shows the control panel and blocks until the window closes or ctx is cancelled. When cfg has no
// serial port, the config window asks for one first. connect is called with the final config and returns
// the writer for protocol lines
func (ui *HeadUI) Run(ctx context.Context, cfg *controller.Config, connect func(controller.Config) (io.Writer, error)) {
	application := app.NewWithID(appID)
	cw := NewConfigWindow(application)

	start := func() {
		w, err := connect(*cfg)
		if err != nil {
			window := application.NewWindow("Animatronic")
			window.Show()
			showError(application, window, err)
			return
		}
		ui.showMain(ctx, application, w, cw.settings)
	}

	if cfg.SerialPort == "" {
		cw.OnSubmit = start
		cw.Show(cfg)
	} else {
		cw.loadSettings()
		start()
	}

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	application.Run()
}

func (ui *HeadUI) showMain(ctx context.Context, application fyne.App, w io.Writer, settings panelSettings) {
	window := application.NewWindow("Animatronic")

	timerCtx, stopTimer := context.WithCancel(ctx)
	idle := newIdleTimer(idleWarning)
	go idle.Run(timerCtx)

	lastCommand := widget.NewLabel("")
	c := &controllerWrapper{
		writer: w,
		idle:   idle,
		onSend: func(line string) {
			lastCommand.SetText(line)
		},
	}
	c.SendAll(settings.commands()...)

	currentState := stateNone
	var stateButton *widget.Button
	stateButton = widget.NewButton(currentState.next().String(), func() {
		currentState = currentState.next()
		c.RunStateCommand(currentState)
		stateButton.SetText(currentState.next().String())
	})

	expressions := []string{}
	for e := animatronic.ExpressionNeutral; e <= animatronic.ExpressionConfused; e++ {
		expressions = append(expressions, e.String())
	}
	expressionSelect := widget.NewSelect(expressions, func(s string) {
		for e := animatronic.ExpressionNeutral; e <= animatronic.ExpressionConfused; e++ {
			if e.String() == s {
				c.Send(animatronic.Command(animatronic.FlagExpress, e.Byte()))
				return
			}
		}
	})
	expressionSelect.PlaceHolder = "Expression"

	infillCheck := widget.NewCheck("Infill", func(checked bool) {
		in := byte('0')
		if checked {
			in = '1'
		}
		c.Send(animatronic.Command(animatronic.FlagInfill, in))
	})
	infillCheck.Checked = true

	speedContainer := createSlider("Speed", 0, motion.SpeedMax, float64(settings.startSpeed), c.SetSpeed)
	tiltContainer := createSlider("Tilt", -9, 9, 0, func(value float64) {
		c.Send(tiltCommand(value))
	})

	contentContainer := container.NewVBox(
		container.NewHBox(
			container.NewPadded(idle.text),
			lastCommand,
			layout.NewSpacer(),
			widget.NewButton("Reset", func() { c.Send(animatronic.Command(animatronic.FlagReset)) }),
			widget.NewButton("Debug", func() { c.Send(animatronic.Command(animatronic.FlagDebug)) }),
		),
		stateButton,
		container.NewGridWithColumns(2, expressionSelect, infillCheck),
		buttonGrid("Eyes", c, eyeButtons),
		buttonGrid("Animations", c, animationButtons),
		buttonGrid("Actuator", c, actuatorButtons),
		buttonGrid("Jaw", c, jawButtons),
		speedContainer,
		tiltContainer,
		ui.createLogAccordion(),
	)

	window.SetOnClosed(func() {
		stopTimer()
	})
	window.SetContent(contentContainer)
	window.Resize(fyne.NewSize(480, 600))
	window.Show()
}
