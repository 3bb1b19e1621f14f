package coverage

// Status is the three-tier outcome of checking coverage against thresholds.
type Status int

const (
	// Excellent means coverage meets the goal threshold.
	Excellent Status = iota
	// Warning means coverage meets the minimum but not the goal.
	Warning
	// Violation means coverage is below the minimum threshold.
	Violation
)

func (s Status) String() string {
	switch s {
	case Excellent:
		return "✅ EXCELLENT"
	case Warning:
		return "⚠️  WARNING"
	default:
		return "❌ VIOLATION"
	}
}

// Classification pairs a status with the gap(s) explaining it. GapToGoal is
// set for Warning and Violation; GapToMinimum only for Violation.
type Classification struct {
	Status       Status
	GapToGoal    float64
	GapToMinimum float64
}

// Classify maps a coverage percentage and the goal/minimum thresholds onto a
// status. Both thresholds are inclusive: coverage exactly equal to a
// threshold satisfies it.
func Classify(coverage, goal, minimum float64) Classification {
	switch {
	case coverage >= goal:
		return Classification{Status: Excellent}
	case coverage >= minimum:
		return Classification{Status: Warning, GapToGoal: goal - coverage}
	default:
		return Classification{
			Status:       Violation,
			GapToGoal:    goal - coverage,
			GapToMinimum: minimum - coverage,
		}
	}
}

// ExitCode maps the headline coverage onto the gate's process exit code:
// 0 meets goal, 1 meets minimum, 2 below minimum. Code 3 is reserved for
// invocation and parse failures and is never produced here.
func ExitCode(coverage, goal, minimum float64) int {
	switch {
	case coverage >= goal:
		return 0
	case coverage >= minimum:
		return 1
	default:
		return 2
	}
}
