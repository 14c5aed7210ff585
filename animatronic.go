package animatronic

const TerminationChar = '\n'

// Command flags understood by the head firmware. Each flag is followed by a fixed number of input bytes
const (
	FlagOpen     byte = 'O'
	FlagClose    byte = 'C'
	FlagSquint   byte = 'Q'
	FlagDead     byte = 'X'
	FlagLook     byte = 'L'
	FlagPupil    byte = 'P'
	FlagInfill   byte = 'I'
	FlagExpress  byte = 'E'
	FlagBlink    byte = 'B'
	FlagCycle    byte = 'W'
	FlagSpiral   byte = 'S'
	FlagStop     byte = 'Z'
	FlagActuator byte = 'A'
	FlagTilt     byte = 'T'
	FlagJaw      byte = 'J'
	FlagSpeed    byte = 'V'
	FlagReset    byte = 'R'
	FlagDebug    byte = 'D'
	FlagVerbose  byte = 'v'
	FlagHelp     byte = 'H'
)

// Expression is a mood shown by both eyes and the mouth LEDs
type Expression int

const (
	ExpressionUnknown Expression = iota
	ExpressionNeutral
	ExpressionAngry
	ExpressionHappy
	ExpressionCaution
	ExpressionConfused
)

func (e Expression) String() string {
	switch e {
	case ExpressionNeutral:
		return "Neutral"
	case ExpressionAngry:
		return "Angry"
	case ExpressionHappy:
		return "Happy"
	case ExpressionCaution:
		return "Caution"
	case ExpressionConfused:
		return "Confused"
	default:
		fallthrough
	case ExpressionUnknown:
		return "Unknown"
	}
}

// Byte is the protocol input for the Expression command
func (e Expression) Byte() byte {
	switch e {
	case ExpressionNeutral:
		return 'N'
	case ExpressionAngry:
		return 'A'
	case ExpressionHappy:
		return 'H'
	case ExpressionCaution:
		return 'C'
	case ExpressionConfused:
		return 'F'
	default:
		return 0
	}
}

// ParseExpression is the inverse of Byte
func ParseExpression(b byte) Expression {
	for e := ExpressionNeutral; e <= ExpressionConfused; e++ {
		if e.Byte() == b {
			return e
		}
	}
	return ExpressionUnknown
}

// Next cycles through the known expressions
func (e Expression) Next() Expression {
	if e >= ExpressionConfused {
		return ExpressionNeutral
	}
	return e + 1
}

// Command builds a protocol command from a flag and its input bytes
func Command(flag byte, input ...byte) []byte {
	return append([]byte{flag}, input...)
}

// SpeedCommand builds the three-digit speed command, clamping to [0, 100]
func SpeedCommand(speed int) []byte {
	speed = max(0, min(speed, 100))
	return Command(FlagSpeed, byte('0'+speed/100), byte('0'+(speed/10)%10), byte('0'+speed%10))
}
