// Package source reads the raw tabular inputs (orders, ad spend) into
// untyped tables of cells. No cleaning happens here; every parsed value is
// carried verbatim for the transform layer to interpret.
package source

import "strconv"

// CellKind tags the variants of a raw cell.
type CellKind int

const (
	CellMissing CellKind = iota
	CellString
	CellNumber
)

// Cell is a raw scalar as read from a tabular source: a string, a number,
// or missing. No invariants; the value may be malformed.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// Missing returns the missing cell.
func Missing() Cell { return Cell{Kind: CellMissing} }

// String returns a string cell.
func String(s string) Cell { return Cell{Kind: CellString, Str: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }

// IsMissing reports whether the cell carries no value.
func (c Cell) IsMissing() bool { return c.Kind == CellMissing }

// Text renders the cell as a string. Missing cells render empty.
func (c Cell) Text() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}
