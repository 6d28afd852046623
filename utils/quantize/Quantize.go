// Package quantize maps desired continuous values onto the nearest
// entry of a fixed discrete table
package quantize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Table holds a fixed, ordered set of discrete candidate rows. Row
// indices are the identifiers returned by Nearest. A Table is
// immutable once constructed: rows are copied in on construction and
// copied out on access, so a Table is safe for concurrent reads.
type Table struct {
	rows *mat.Dense
	n    int // number of rows
	dims int // features per row
}

// NewTable constructs a Table from the argument rows. All rows must
// have equal, nonzero length. NewTable panics otherwise, since a
// malformed table is a programming error, not a runtime condition.
func NewTable(rows [][]float64) *Table {
	if len(rows) == 0 {
		panic("newTable: table must have at least one row")
	}

	dims := len(rows[0])
	if dims == 0 {
		panic("newTable: table rows must have at least one feature")
	}

	backing := make([]float64, 0, len(rows)*dims)
	for i, row := range rows {
		if len(row) != dims {
			panic(fmt.Sprintf("newTable: row %v has length %v, expected %v",
				i, len(row), dims))
		}
		backing = append(backing, row...)
	}

	return &Table{mat.NewDense(len(rows), dims, backing), len(rows), dims}
}

// Len returns the number of rows in the Table
func (t *Table) Len() int {
	return t.n
}

// Dims returns the number of features per row
func (t *Table) Dims() int {
	return t.dims
}

// Row returns a copy of row i of the Table
func (t *Table) Row(i int) []float64 {
	row := make([]float64, t.dims)
	copy(row, t.rows.RawRowView(i))
	return row
}

// Nearest returns the index of the row closest to desired in Euclidean
// distance. Ties are broken by the lowest index. Nearest is a total
// function over finite inputs of matching dimensionality: it scans
// every row and always returns a valid row index. The desired vector
// must have the same length as the Table's rows, otherwise Nearest
// panics.
func (t *Table) Nearest(desired []float64) int {
	if len(desired) != t.dims {
		panic(fmt.Sprintf("nearest: desired vector has length %v, table "+
			"rows have length %v", len(desired), t.dims))
	}

	best := 0
	bestDist := floats.Distance(t.rows.RawRowView(0), desired, 2)
	for i := 1; i < t.n; i++ {
		dist := floats.Distance(t.rows.RawRowView(i), desired, 2)
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

// Nearest1D returns the index of the value in table closest to desired
// in absolute difference. Ties are broken by the lowest index. The
// argument table must be non-empty, otherwise Nearest1D panics.
func Nearest1D(table []float64, desired float64) int {
	if len(table) == 0 {
		panic("nearest1D: table must have at least one entry")
	}

	best := 0
	bestDist := math.Abs(table[0] - desired)
	for i := 1; i < len(table); i++ {
		dist := math.Abs(table[i] - desired)
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
