package ui

import "github.com/calvinmclean/animatronic"

// state is a step of the scripted show run by the "Next" button
type state int

const (
	stateNone state = iota
	stateWake
	stateLookAround
	stateGreet
	stateLaugh
	stateSleep
)

func (s state) String() string {
	switch s {
	case stateWake:
		return "Wake"
	case stateLookAround:
		return "Look Around"
	case stateGreet:
		return "Greet"
	case stateLaugh:
		return "Laugh"
	case stateSleep:
		return "Sleep"
	default:
		return "Unknown"
	}
}

func (s state) next() state {
	if s == stateSleep {
		// the show starts over after sleeping
		return stateWake
	}
	return s + 1
}

func (s state) commands() [][]byte {
	cmd := animatronic.Command
	switch s {
	case stateWake:
		return [][]byte{
			cmd(animatronic.FlagReset),
			cmd(animatronic.FlagBlink),
		}
	case stateLookAround:
		return [][]byte{
			cmd(animatronic.FlagLook, 'L'),
			cmd(animatronic.FlagTilt, 'L', '2'),
		}
	case stateGreet:
		return [][]byte{
			cmd(animatronic.FlagExpress, animatronic.ExpressionHappy.Byte()),
			cmd(animatronic.FlagActuator, 'B'),
		}
	case stateLaugh:
		return [][]byte{
			cmd(animatronic.FlagCycle, '+'),
			cmd(animatronic.FlagJaw, 'L'),
		}
	case stateSleep:
		return [][]byte{
			cmd(animatronic.FlagStop),
			cmd(animatronic.FlagClose),
			cmd(animatronic.FlagActuator, 'R'),
		}
	default:
		return nil
	}
}
