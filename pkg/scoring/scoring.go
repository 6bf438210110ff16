package scoring

// Kind selects the threshold table used by Scale.
type Kind int

const (
	KindCost        Kind = iota // currency units
	KindSchedule                // days
	KindProbability             // percent
)

// Threshold tables are half-open intervals [prev, next): a boundary value
// lands in the higher bucket. Anything below the first threshold, negatives
// included, is bucket 1.
var (
	costThresholds        = [4]int{100, 200, 500, 1000}
	scheduleThresholds    = [4]int{14, 45, 90, 150}
	probabilityThresholds = [4]int{10, 20, 50, 75}
)

// Scale maps a raw magnitude onto the 1..5 ordinal scale. Total on all ints,
// never fails.
func Scale(kind Kind, raw int) int {
	var t [4]int
	switch kind {
	case KindSchedule:
		t = scheduleThresholds
	case KindProbability:
		t = probabilityThresholds
	default:
		t = costThresholds
	}
	for i, limit := range t {
		if raw < limit {
			return i + 1
		}
	}
	return 5
}

// Composite is the rating of a risk: plain sum of the three scales, 3..15.
// No weighting, ties rank equal.
func Composite(costScale, scheduleScale, probabilityScale int) int {
	return costScale + scheduleScale + probabilityScale
}

// probabilityBands is the user-facing band table offered as buttons. It is
// intentionally coarser and bucketed differently than probabilityThresholds;
// the two tables must not be unified.
var probabilityBands = map[int]int{
	1: 10, // <10%
	2: 15, // 10-20%
	3: 27, // 20-50%
	4: 47, // 50-75%
	5: 60, // >75%
}

// ProbabilityBand resolves a band level (1..5) to the stored percent value.
func ProbabilityBand(level int) (int, bool) {
	p, ok := probabilityBands[level]
	return p, ok
}
