package table

import "strconv"

type cellKind int

const (
	cellMissing cellKind = iota
	cellText
	cellNumber
)

// Cell is one tabular value: a number, a piece of text, or missing.
// Keeping the three shapes explicit makes the value parser's fallback
// path a testable branch instead of a type assertion chain.
type Cell struct {
	kind cellKind
	text string
	num  float64
}

// MissingCell returns the missing cell.
func MissingCell() Cell {
	return Cell{kind: cellMissing}
}

// TextCell returns a cell holding raw text.
func TextCell(s string) Cell {
	return Cell{kind: cellText, text: s}
}

// NumberCell returns a cell holding a numeric value.
func NumberCell(v float64) Cell {
	return Cell{kind: cellNumber, num: v}
}

// IsMissing reports whether the cell has no value.
func (c Cell) IsMissing() bool {
	return c.kind == cellMissing
}

// Number returns the numeric value and whether the cell is numeric.
func (c Cell) Number() (float64, bool) {
	return c.num, c.kind == cellNumber
}

// Text returns the cell content as text. Numeric cells format their value;
// missing cells return the empty string.
func (c Cell) Text() string {
	switch c.kind {
	case cellNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case cellText:
		return c.text
	default:
		return ""
	}
}
