package commands

import (
	"errors"

	"github.com/calvinmclean/animatronic"
	"github.com/calvinmclean/animatronic/eye"
	"github.com/calvinmclean/animatronic/motion"
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to control a head
type Controller interface {
	Open()
	Close()
	Squint()
	Dead()
	Look(eye.Pose)
	Dilate()
	Contract()
	SetInfill(bool)
	Express(animatronic.Expression)

	Blink()
	ColorCycle(eye.Direction)
	Spiral(eraseTrailing bool)
	StopAnimations()

	Retract()
	Extend()
	ExtendHalf()
	Unload()
	Bounce()
	Shake(count int)
	TiltLeft(amount int)
	TiltRight(amount int)

	OpenJaw()
	CloseJaw()
	Laugh(count int)

	SetSpeed(int)
	Reset()
	Debug()
	Verbose()

	// I/O
	ReadByte() (byte, error)
}

func noInput(f func(Controller)) func(Controller, []byte) error {
	return func(c Controller, _ []byte) error {
		f(c)
		return nil
	}
}

var (
	OpenCommand = &Command{
		Flag:        animatronic.FlagOpen,
		Run:         noInput(Controller.Open),
		Description: "Open both eyes.",
	}
	CloseCommand = &Command{
		Flag:        animatronic.FlagClose,
		Run:         noInput(Controller.Close),
		Description: "Close both eyes.",
	}
	SquintCommand = &Command{
		Flag:        animatronic.FlagSquint,
		Run:         noInput(Controller.Squint),
		Description: "Squint both eyes.",
	}
	DeadCommand = &Command{
		Flag:        animatronic.FlagDead,
		Run:         noInput(Controller.Dead),
		Description: "Show a red X in both eyes.",
	}
	LookCommand = &Command{
		Flag:      animatronic.FlagLook,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			var pose eye.Pose
			switch input[0] {
			case 'L':
				pose = eye.PoseLookLeft
			case 'R':
				pose = eye.PoseLookRight
			case 'U':
				pose = eye.PoseLookUp
			case 'D':
				pose = eye.PoseLookDown
			default:
				return errors.New("invalid input: " + string(input))
			}
			c.Look(pose)
			return nil
		},
		Description: "Look in a direction. Input: 'L', 'R', 'U', or 'D'.",
	}
	PupilCommand = &Command{
		Flag:      animatronic.FlagPupil,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			switch input[0] {
			case '+':
				c.Dilate()
			case '-':
				c.Contract()
			default:
				return errors.New("invalid input: " + string(input))
			}
			return nil
		},
		Description: "Dilate or contract the pupils. Input: '+' or '-'.",
	}
	InfillCommand = &Command{
		Flag:      animatronic.FlagInfill,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			switch input[0] {
			case '1':
				c.SetInfill(true)
			case '0':
				c.SetInfill(false)
			default:
				return errors.New("invalid input: " + string(input))
			}
			return nil
		},
		Description: "Fill or hollow the pupils. Input: '1' or '0'.",
	}
	ExpressCommand = &Command{
		Flag:      animatronic.FlagExpress,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			e := animatronic.ParseExpression(input[0])
			if e == animatronic.ExpressionUnknown {
				return errors.New("invalid input: " + string(input))
			}
			c.Express(e)
			return nil
		},
		Description: "Show an expression. Input: 'N' (Neutral), 'A' (Angry), 'H' (Happy), 'C' (Caution), 'F' (Confused).",
	}
	BlinkCommand = &Command{
		Flag:        animatronic.FlagBlink,
		Run:         noInput(Controller.Blink),
		Description: "Blink both eyes. The eyes should be open.",
	}
	ColorCycleCommand = &Command{
		Flag:      animatronic.FlagCycle,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			switch input[0] {
			case '+':
				c.ColorCycle(eye.Clockwise)
			case '-':
				c.ColorCycle(eye.CounterClockwise)
			default:
				return errors.New("invalid input: " + string(input))
			}
			return nil
		},
		Description: "Cycle colors until stopped. Input: '+' (clockwise) or '-' (counter-clockwise).",
	}
	SpiralCommand = &Command{
		Flag:      animatronic.FlagSpiral,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			switch input[0] {
			case 'D':
				c.Spiral(true)
			case 'L':
				c.Spiral(false)
			default:
				return errors.New("invalid input: " + string(input))
			}
			return nil
		},
		Description: "Spiral out from the center. Input: 'D' (dot) or 'L' (line).",
	}
	StopCommand = &Command{
		Flag:        animatronic.FlagStop,
		Run:         noInput(Controller.StopAnimations),
		Description: "Stop eye animations.",
	}
	ActuatorCommand = &Command{
		Flag:      animatronic.FlagActuator,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			switch input[0] {
			case 'R':
				c.Retract()
			case 'E':
				c.Extend()
			case 'H':
				c.ExtendHalf()
			case 'U':
				c.Unload()
			case 'B':
				c.Bounce()
			case 'S':
				c.Shake(motion.DefaultShakeCount)
			default:
				return errors.New("invalid input: " + string(input))
			}
			return nil
		},
		Description: "Move the actuator. Input: 'R' (retract), 'E' (extend), 'H' (half), 'U' (unload), 'B' (bounce), 'S' (shake).",
	}
	TiltCommand = &Command{
		Flag:      animatronic.FlagTilt,
		InputSize: 2,
		Run: func(c Controller, input []byte) error {
			v, ok := digit(input[1])
			if !ok {
				return errors.New("invalid input: " + string(input))
			}

			switch input[0] {
			case 'L':
				c.TiltLeft(v * 100)
			case 'R':
				c.TiltRight(v * 100)
			default:
				return errors.New("invalid input: " + string(input))
			}
			return nil
		},
		Description: "Tilt the head. Input: 'L' or 'R', then amount (0-9, in hundreds).",
	}
	JawCommand = &Command{
		Flag:      animatronic.FlagJaw,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			switch input[0] {
			case 'O':
				c.OpenJaw()
			case 'C':
				c.CloseJaw()
			case 'L':
				c.Laugh(motion.DefaultLaughCount)
			default:
				return errors.New("invalid input: " + string(input))
			}
			return nil
		},
		Description: "Move the jaw. Input: 'O' (open), 'C' (close), 'L' (laugh).",
	}
	SpeedCommand = &Command{
		Flag:      animatronic.FlagSpeed,
		InputSize: 3,
		Run: func(c Controller, input []byte) error {
			speed := 0
			for _, b := range input {
				v, ok := digit(b)
				if !ok {
					return errors.New("invalid input: " + string(input))
				}
				speed = speed*10 + v
			}
			if speed > motion.SpeedMax {
				return errors.New("invalid input: " + string(input))
			}
			c.SetSpeed(speed)
			return nil
		},
		Description: "Set servo speed. Input: 000-100.",
	}
	ResetCommand = &Command{
		Flag:        animatronic.FlagReset,
		Run:         noInput(Controller.Reset),
		Description: "Reset eyes, actuator and jaw.",
	}
	DebugCommand = &Command{
		Flag:        animatronic.FlagDebug,
		Run:         noInput(Controller.Debug),
		Description: "Print the current state.",
	}
	VerboseCommand = &Command{
		Flag:        animatronic.FlagVerbose,
		Run:         noInput(Controller.Verbose),
		Description: "Enable verbose output.",
	}
	HelpCommand = &Command{
		Flag:        animatronic.FlagHelp,
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, b []byte) error {
			println("Available Commands:")
			for _, cmd := range commands {
				println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

// digit parses a single ASCII digit
func digit(b byte) (int, bool) {
	if b < '0' || b > '9' {
		return 0, false
	}
	return int(b - '0'), true
}

var commands = []*Command{
	OpenCommand,
	CloseCommand,
	SquintCommand,
	DeadCommand,
	LookCommand,
	PupilCommand,
	InfillCommand,
	ExpressCommand,
	BlinkCommand,
	ColorCycleCommand,
	SpiralCommand,
	StopCommand,
	ActuatorCommand,
	TiltCommand,
	JawCommand,
	SpeedCommand,
	ResetCommand,
	DebugCommand,
	VerboseCommand,
}

// Commands lists every command the parser understands except help
func Commands() []*Command {
	return commands
}

// Parser reads commands without blocking. Partial input is kept between calls to Poll
type Parser struct {
	cmdMap  map[byte]*Command
	pending *Command
	input   []byte
}

func NewParser() *Parser {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}

	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}

	return &Parser{cmdMap: cmdMap}
}

// Poll consumes every byte that is available and runs each completed command. It returns once ReadByte
// reports an error, which is how an empty serial buffer looks
func (p *Parser) Poll(c Controller) {
	for {
		b, err := c.ReadByte()
		if err != nil {
			return
		}

		err = p.Feed(c, b)
		if err != nil {
			println("error:", err.Error())
		}
	}
}

// Feed handles a single input byte. Unknown flags are ignored
func (p *Parser) Feed(c Controller, b byte) error {
	if p.pending == nil {
		cmd, ok := p.cmdMap[b]
		if !ok {
			return nil
		}
		p.pending = cmd
		p.input = p.input[:0]
	} else {
		p.input = append(p.input, b)
	}

	if uint(len(p.input)) < p.pending.InputSize {
		return nil
	}

	cmd := p.pending
	p.pending = nil
	return cmd.Run(c, p.input)
}

// Pending reports whether a command is waiting for more input
func (p *Parser) Pending() bool {
	return p.pending != nil
}
