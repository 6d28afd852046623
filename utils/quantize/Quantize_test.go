package quantize

import "testing"

func TestNearestReturnsTableRowsExactly(t *testing.T) {
	table := NewTable([][]float64{
		{21, 22, 1.0, 0.0},
		{22, 23, 1.0, 0.5},
		{29, 30, 1.0, 1.0},
		{5, 50, 0.0, 0.0},
	})

	for i := 0; i < table.Len(); i++ {
		if got := table.Nearest(table.Row(i)); got != i {
			t.Errorf("row %v quantized to %v", i, got)
		}
	}
}

func TestNearestTieBreaksToLowestIndex(t *testing.T) {
	table := NewTable([][]float64{
		{0.0},
		{1.0},
	})

	// Equidistant from both rows
	if got := table.Nearest([]float64{0.5}); got != 0 {
		t.Errorf("expected tie to break to index 0, got %v", got)
	}
}

func TestNearestFindsClosestRow(t *testing.T) {
	table := NewTable([][]float64{
		{5, 50},
		{21, 22},
		{24, 25},
		{29, 30},
	})

	tests := []struct {
		desired []float64
		want    int
	}{
		{[]float64{24.4, 25.4}, 2},
		{[]float64{20.0, 21.0}, 1},
		{[]float64{100.0, 100.0}, 3},
		{[]float64{5.0, 50.0}, 0},
	}

	for _, test := range tests {
		if got := table.Nearest(test.desired); got != test.want {
			t.Errorf("desired %v: got index %v, want %v", test.desired,
				got, test.want)
		}
	}
}

func TestNearestPanicsOnDimensionMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a mismatched desired vector")
		}
	}()

	table := NewTable([][]float64{{1, 2}})
	table.Nearest([]float64{1, 2, 3})
}

func TestNearest1D(t *testing.T) {
	table := []float64{0.0, 0.5, 0.75, 1.0}

	tests := []struct {
		desired float64
		want    int
	}{
		{0.0, 0},
		{0.2, 0},
		{0.5, 1},
		{0.7, 2},
		{1.0, 3},
		{17.0, 3},
		{-1.0, 0},
	}

	for _, test := range tests {
		if got := Nearest1D(table, test.desired); got != test.want {
			t.Errorf("desired %v: got index %v, want %v", test.desired,
				got, test.want)
		}
	}
}

func TestNewTablePanicsOnRaggedRows(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for ragged rows")
		}
	}()

	NewTable([][]float64{{1, 2}, {1}})
}

func TestRowReturnsACopy(t *testing.T) {
	table := NewTable([][]float64{{1, 2}})

	row := table.Row(0)
	row[0] = 100

	if got := table.Row(0)[0]; got != 1 {
		t.Errorf("mutating a returned row changed the table: got %v", got)
	}
}
