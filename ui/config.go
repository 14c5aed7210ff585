package ui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/animatronic"
	"github.com/calvinmclean/animatronic/controller"
	"github.com/calvinmclean/animatronic/motion"
)

const (
	prefSerialPort     = "serialPort"
	prefBaudRate       = "baudRate"
	prefReadTimeoutMs  = "readTimeoutMs"
	prefResetOnConnect = "resetOnConnect"
	prefStartSpeed     = "startSpeed"
)

// panelSettings are applied by the panel right after it connects
type panelSettings struct {
	resetOnConnect bool
	startSpeed     int
}

// commands returns the lines sent before the panel is shown. Reset goes first because it does not change speed
func (s panelSettings) commands() [][]byte {
	cmds := [][]byte{}
	if s.resetOnConnect {
		cmds = append(cmds, animatronic.Command(animatronic.FlagReset))
	}
	return append(cmds, animatronic.SpeedCommand(s.startSpeed))
}

// ConfigWindow asks for the serial connection and panel settings, and remembers them in the app preferences
type ConfigWindow struct {
	app      fyne.App
	settings panelSettings
	OnSubmit func()
}

func NewConfigWindow(app fyne.App) *ConfigWindow {
	return &ConfigWindow{
		app: app,
	}
}

func (cw *ConfigWindow) loadSettings() {
	prefs := cw.app.Preferences()
	cw.settings = panelSettings{
		resetOnConnect: prefs.BoolWithFallback(prefResetOnConnect, true),
		startSpeed:     prefs.IntWithFallback(prefStartSpeed, motion.SpeedMax),
	}
}

func (cw *ConfigWindow) load(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	cfg.SerialPort = prefs.StringWithFallback(prefSerialPort, cfg.SerialPort)
	cfg.BaudRate = prefs.StringWithFallback(prefBaudRate, controller.DefaultBaudRate)
	timeoutMs := prefs.IntWithFallback(prefReadTimeoutMs, int(controller.DefaultReadTimeout.Milliseconds()))
	cfg.ReadTimeout = time.Duration(timeoutMs) * time.Millisecond
	cw.loadSettings()
}

func (cw *ConfigWindow) save(cfg *controller.Config) {
	prefs := cw.app.Preferences()
	prefs.SetString(prefSerialPort, cfg.SerialPort)
	prefs.SetString(prefBaudRate, cfg.BaudRate)
	prefs.SetInt(prefReadTimeoutMs, int(cfg.ReadTimeout.Milliseconds()))
	prefs.SetBool(prefResetOnConnect, cw.settings.resetOnConnect)
	prefs.SetInt(prefStartSpeed, cw.settings.startSpeed)
}

func positiveInt(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("not a number")
	}
	if v <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

// Show opens the window filled from preferences. Closing it without connecting quits the app
func (cw *ConfigWindow) Show(cfg *controller.Config) {
	window := cw.app.NewWindow("Animatronic - Connect")
	window.Resize(fyne.NewSize(420, 260))
	window.SetCloseIntercept(func() {
		window.Close()
		cw.app.Quit()
	})

	cw.load(cfg)

	portSelect := widget.NewSelect(nil, func(port string) {
		cfg.SerialPort = port
	})
	refreshPorts := func() {
		ports, err := controller.GetSerialPorts()
		if err != nil && !errors.Is(err, controller.ErrNoUSBSerial) {
			dialog.ShowError(fmt.Errorf("error getting serial ports: %w", err), window)
		}
		portSelect.SetOptions(append(ports, controller.SerialPortNone))
	}
	refreshPorts()
	if cfg.SerialPort == "" {
		cfg.SerialPort = portSelect.Options[0]
	}
	portSelect.SetSelected(cfg.SerialPort)

	baudEntry := widget.NewEntry()
	baudEntry.SetText(cfg.BaudRate)
	baudEntry.Validator = positiveInt

	timeoutEntry := widget.NewEntry()
	timeoutEntry.SetText(strconv.Itoa(int(cfg.ReadTimeout.Milliseconds())))
	timeoutEntry.Validator = positiveInt

	speedLabel := widget.NewLabel(strconv.Itoa(cw.settings.startSpeed))
	speedSlider := widget.NewSlider(0, motion.SpeedMax)
	speedSlider.Step = 1
	speedSlider.SetValue(float64(cw.settings.startSpeed))
	speedSlider.OnChanged = func(v float64) {
		speedLabel.SetText(strconv.Itoa(int(v)))
	}

	resetCheck := widget.NewCheck("Reset the head after connecting", nil)
	resetCheck.SetChecked(cw.settings.resetOnConnect)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: container.NewBorder(nil, nil, nil,
				widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), refreshPorts),
				portSelect,
			)},
			{Text: "Baud Rate", Widget: baudEntry},
			{Text: "Read Timeout (ms)", Widget: timeoutEntry},
			{Text: "Start Speed", Widget: container.NewBorder(nil, nil, nil, speedLabel, speedSlider)},
			{Widget: resetCheck},
		},
		SubmitText: "Connect",
		OnSubmit: func() {
			timeoutMs, _ := strconv.Atoi(timeoutEntry.Text)
			cfg.BaudRate = baudEntry.Text
			cfg.ReadTimeout = time.Duration(timeoutMs) * time.Millisecond
			cw.settings = panelSettings{
				resetOnConnect: resetCheck.Checked,
				startSpeed:     int(speedSlider.Value),
			}
			cw.save(cfg)

			// OnSubmit opens the next window before this one closes so the app keeps running
			cw.OnSubmit()
			window.Close()
		},
		CancelText: "Quit",
		OnCancel: func() {
			window.Close()
			cw.app.Quit()
		},
	}

	window.SetContent(container.NewPadded(form))
	window.Show()
}

func showError(app fyne.App, window fyne.Window, err error) {
	d := dialog.NewError(err, window)
	d.SetOnClosed(func() {
		app.Quit()
	})
	d.Show()
}
