// Package duration parses the short ages taken by "docver ls --stale" and
// "docver audit --since": a whole number followed by one unit letter.
//
//	36h  hours
//	7d   days
//	4w   weeks
//	3m   months of 30 days
//	1y   years of 365 days
package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ErrInvalid is returned for strings that are not an age.
var ErrInvalid = errors.New("invalid age")

const day = 24 * time.Hour

var units = map[byte]time.Duration{
	'h': time.Hour,
	'd': day,
	'w': 7 * day,
	'm': 30 * day,
	'y': 365 * day,
}

// Parse converts s to a duration.
func Parse(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, invalid(s)
	}
	unit, ok := units[s[len(s)-1]]
	if !ok {
		return 0, invalid(s)
	}
	digits := s[:len(s)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, invalid(s)
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %s is too large", ErrInvalid, s)
	}
	return time.Duration(n) * unit, nil
}

func invalid(s string) error {
	return fmt.Errorf("%w: %q (use a number and one of h, d, w, m, y: 7d, 4w, 3m)", ErrInvalid, s)
}
