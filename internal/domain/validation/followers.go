package validation

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// MaxFollowers caps parsed and rounded follower counts.
const MaxFollowers = 1_000_000_000

// ParseFollowers reads a follower count the way a person types it: "12,400",
// "12 400", "12_400" or "12k fans" all yield their leading digits. It reports
// false when no digits lead the value. Counts above MaxFollowers are capped.
func ParseFollowers(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n > MaxFollowers {
		return MaxFollowers, true
	}
	return n, true
}

// RoundFollowers rounds n up to the display step for its magnitude:
// 50 below 1,000, 500 below 10,000, 5,000 below 100,000 and 25,000 above.
// The result never exceeds MaxFollowers.
func RoundFollowers(n int) int {
	if n <= 0 {
		return 0
	}
	if n >= MaxFollowers {
		return MaxFollowers
	}
	var step int
	switch {
	case n < 1_000:
		step = 50
	case n < 10_000:
		step = 500
	case n < 100_000:
		step = 5_000
	default:
		step = 25_000
	}
	return (n + step - 1) / step * step
}

// FormatFollowers rounds n up and renders it with thousands separators.
func FormatFollowers(n int) string {
	return humanize.Comma(int64(RoundFollowers(n)))
}
