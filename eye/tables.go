package eye

// Ring indexes start at the top of the ring and run clockwise. The outer ring has 12 LEDs (0 top, 3 right,
// 6 bottom, 9 left) and the inner ring has 8 (0 top, 2 right, 4 bottom, 6 left).
const (
	DotStart       = 0
	InnerRingStart = 1
	InnerRingCount = 8
	OuterRingStart = InnerRingStart + InnerRingCount
	OuterRingCount = 12
	LEDCount       = 1 + InnerRingCount + OuterRingCount
)

func inner(i int) int { return InnerRingStart + i }
func outer(i int) int { return OuterRingStart + i }

var (
	// closedIdxs is a horizontal line across the eye. The regular pupil only draws the middle three
	closedIdxs = [5]int{outer(3), inner(2), DotStart, inner(6), outer(9)}

	closedRegularStart = 1
	closedRegularSize  = 3

	squintExtIdxs = [3]int{inner(1), inner(0), inner(7)}

	blinkStep0Idxs = [2]int{inner(0), inner(4)}
	blinkStep1Idxs = [4]int{inner(1), inner(3), inner(5), inner(7)}

	deadIdxs = [13]int{
		outer(1), outer(2), outer(4), outer(5), outer(7), outer(8), outer(10), outer(11),
		inner(1), inner(3), inner(5), inner(7),
		DotStart,
	}

	lookLeftIdxs  = [6]int{outer(8), outer(9), outer(10), inner(5), inner(6), inner(7)}
	lookRightIdxs = [6]int{outer(2), outer(3), outer(4), inner(1), inner(2), inner(3)}
	lookUpIdxs    = [6]int{outer(11), outer(0), outer(1), inner(7), inner(0), inner(1)}
	lookDownIdxs  = [6]int{outer(5), outer(6), outer(7), inner(3), inner(4), inner(5)}

	// Extra outer LEDs that widen the look arc for the large pupil
	lookLeftLargeIdxs  = [2]int{outer(7), outer(11)}
	lookRightLargeIdxs = [2]int{outer(1), outer(5)}
	lookUpLargeIdxs    = [2]int{outer(10), outer(2)}
	lookDownLargeIdxs  = [2]int{outer(4), outer(8)}
)
