package tower

import (
	"strconv"
	"strings"
)

// PracticeSettings customizes a practice run.
type PracticeSettings struct {
	StartFloor int  // pre-set current and highest floor
	FixedSpeed bool // never scroll
}

// ParseStartFloor parses a practice start floor. Anything non-numeric or
// outside [1, maxFloor] falls back to floor 1.
func ParseStartFloor(s string, maxFloor int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return NormalizeStartFloor(n, maxFloor)
}

// NormalizeStartFloor maps out-of-range start floors to floor 1.
func NormalizeStartFloor(n, maxFloor int) int {
	if n < 1 || (maxFloor > 0 && n > maxFloor) {
		return 1
	}
	return n
}
