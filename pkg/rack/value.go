package rack

import (
	"regexp"
	"strconv"

	"rackmond/pkg/table"
)

// numberPattern matches a signed decimal with an optional exponent
// embedded anywhere in a string, e.g. the 42.5 in "42.5C" or "+3.3V".
var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+(?:[eE][-+]?\d+)?`)

// ParseValue converts a cell into a numeric reading. It is total: missing
// cells and non-numeric garbage yield 0, numeric cells their value, and
// text cells the first embedded number if one exists.
func ParseValue(c table.Cell) float64 {
	if c.IsMissing() {
		return 0.0
	}
	if v, ok := c.Number(); ok {
		return v
	}

	match := numberPattern.FindString(c.Text())
	if match == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0.0
	}
	return v
}
