package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calvinmclean/animatronic"
	"github.com/calvinmclean/animatronic/eye"
	"github.com/calvinmclean/animatronic/firmware/commands"
	"github.com/calvinmclean/animatronic/head"
	"github.com/calvinmclean/animatronic/motion"
)

type SimCommand struct {
	Tick time.Duration `long:"tick" default:"20ms" description:"Simulated time between updates"`
}

const (
	eyeGridSize  = 7
	innerRadius  = math.Sqrt2
	outerRadius  = 2.9
	borderSize   = 2
	headerHeight = 12
	footerHeight = 4
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))

	servoColors = map[string]string{
		"left":  "10",
		"right": "14",
		"jaw":   "13",
	}
	servoNames = []string{"left", "right", "jaw"}
)

// simClock is the only time source of the simulation. Blocking moves advance it instead of sleeping so the
// terminal stays responsive
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time {
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *simClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
}

type simServo struct {
	width int16
}

func (s *simServo) SetMicroseconds(width int16) {
	s.width = width
}

// simHead satisfies commands.Controller. Input comes from key presses so ReadByte never has data
type simHead struct {
	*head.Head
}

func (*simHead) ReadByte() (byte, error) {
	return 0, io.EOF
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type simModel struct {
	head   *simHead
	parser *commands.Parser
	clock  *simClock
	tick   time.Duration

	chart         *streamlinechart.Model
	lastPositions []int

	typed    string
	status   string
	err      error
	showHelp bool

	width, height int
	quitting      bool
}

func newSimModel(tick time.Duration) (simModel, error) {
	clock := &simClock{now: time.Now()}

	h, err := head.New(head.DefaultConfig(), &simServo{}, &simServo{}, &simServo{})
	if err != nil {
		return simModel{}, err
	}
	h.WithClock(clock.Now).WithSleep(clock.Sleep)
	h.Reset()

	chart := streamlinechart.New(80, 10,
		streamlinechart.WithYRange(motion.PositionMin, motion.PositionMax),
	)
	for _, name := range servoNames {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(servoColors[name]))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}

	return simModel{
		head:   &simHead{h},
		parser: commands.NewParser(),
		clock:  clock,
		tick:   tick,
		chart:  &chart,
	}, nil
}

// positions returns servo positions in the same order as servoNames
func (m *simModel) positions() []int {
	left, right, jaw := m.head.Positions()
	return []int{left, right, jaw}
}

func (m *simModel) hasMovement(positions []int) bool {
	if m.lastPositions == nil {
		return true
	}
	for i, pos := range positions {
		if pos != m.lastPositions[i] {
			return true
		}
	}
	return false
}

func (m *simModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 10
	}
	width = max(m.width-borderSize-2, 40)
	height = max(m.height-headerHeight-footerHeight-borderSize, 6)
	return width, height
}

func (m *simModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

// input feeds typed protocol bytes to the parser. Help, debug and verbose are handled here because the
// firmware versions print to stderr, which would tear the terminal
func (m *simModel) input(b byte) {
	if !m.parser.Pending() {
		m.typed = ""
		m.err = nil

		switch b {
		case animatronic.FlagHelp:
			m.showHelp = !m.showHelp
			return
		case animatronic.FlagDebug, animatronic.FlagVerbose:
			m.status = "state is always shown above"
			return
		}
	}

	m.typed += string(b)
	err := m.parser.Feed(m.head, b)
	if err != nil {
		m.err = err
		return
	}
	if !m.parser.Pending() {
		m.status = "ran " + m.typed
	}
}

func (m simModel) Init() tea.Cmd {
	return tickCmd(m.tick)
}

func (m simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				if r < 0x80 {
					m.input(byte(r))
				}
			}
		}
		return m, nil

	case tickMsg:
		m.clock.Sleep(m.tick)
		m.head.Update(m.clock.now)

		positions := m.positions()
		if m.hasMovement(positions) {
			for i, name := range servoNames {
				m.chart.PushDataSet(name, float64(positions[i]))
			}
			m.chart.DrawAll()
			m.lastPositions = positions
		}
		return m, tickCmd(m.tick)
	}

	return m, nil
}

func (m simModel) View() string {
	if m.quitting {
		return "Simulation stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Animatronic Simulator"))
	left, right, jaw := m.head.Positions()
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  expression=%s arms=%d/%d jaw=%d speed=%d",
		m.head.Expression(), left, right, jaw, m.head.Actuator.Left.Speed())))
	sb.WriteString("\n\n")

	cfg := head.DefaultConfig()
	leds := m.head.Pixels()
	eyes := lipgloss.JoinHorizontal(lipgloss.Top,
		renderEye(leds[cfg.LeftEyeStart:]),
		"    ",
		renderEye(leds[cfg.RightEyeStart:]),
	)
	sb.WriteString(eyes)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", eyeGridSize-2))
	sb.WriteString(renderLEDs(leds[cfg.MouthStart : cfg.MouthStart+cfg.MouthCount]))
	sb.WriteString("\n\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	if m.showHelp {
		sb.WriteString(renderHelp())
		sb.WriteString("\n")
	}

	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Render(m.err.Error()))
	case m.parser.Pending():
		sb.WriteString("> " + m.typed)
	case m.status != "":
		sb.WriteString(statusStyle.Render(m.status))
	default:
		sb.WriteString(statusStyle.Render("Type protocol commands. 'H' for help, esc to quit"))
	}
	sb.WriteString("\n")

	return sb.String()
}

// eyeCell places LED i of a ring with n LEDs on the eye grid. Index 0 is at the top and indexes run clockwise
func eyeCell(i, n int, radius float64) (row, col int) {
	a := 2 * math.Pi * float64(i) / float64(n)
	center := eyeGridSize / 2
	row = center + int(math.Round(-radius*math.Cos(a)))
	col = center + int(math.Round(radius*math.Sin(a)))
	return row, col
}

func renderEye(leds []color.RGBA) string {
	var grid [eyeGridSize][eyeGridSize]string
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = "  "
		}
	}

	center := eyeGridSize / 2
	grid[center][center] = renderLED(leds[eye.DotStart])
	for i := range eye.InnerRingCount {
		row, col := eyeCell(i, eye.InnerRingCount, innerRadius)
		grid[row][col] = renderLED(leds[eye.InnerRingStart+i])
	}
	for i := range eye.OuterRingCount {
		row, col := eyeCell(i, eye.OuterRingCount, outerRadius)
		grid[row][col] = renderLED(leds[eye.OuterRingStart+i])
	}

	lines := make([]string, 0, eyeGridSize)
	for _, row := range grid {
		lines = append(lines, strings.Join(row[:], ""))
	}
	return strings.Join(lines, "\n")
}

func renderLEDs(leds []color.RGBA) string {
	var sb strings.Builder
	for _, c := range leds {
		sb.WriteString(renderLED(c))
	}
	return sb.String()
}

func renderLED(c color.RGBA) string {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return offStyle.Render("· ")
	}
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("● ")
}

func renderLegend() string {
	var items []string
	for _, name := range servoNames {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(servoColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}

func renderHelp() string {
	lines := []string{}
	for _, cmd := range commands.Commands() {
		lines = append(lines, string(cmd.Flag)+": "+cmd.Description)
	}
	return statusStyle.Render(strings.Join(lines, "\n"))
}

func (c *SimCommand) Execute(args []string) error {
	if c.Tick <= 0 {
		return errors.New("tick must be positive")
	}

	m, err := newSimModel(c.Tick)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
