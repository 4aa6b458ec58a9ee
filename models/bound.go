package models

import (
	"math"
	"strconv"
	"strings"
)

// NumericBound turns a raw filter input into a numeric bound. Blank or
// non-finite input means "no bound", never "exclude everything". The
// search pipeline and the gateway's query builder share this rule so a
// bound ignored locally is also left off the wire.
func NumericBound(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
