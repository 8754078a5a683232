package dataset

import (
	"errors"
	"fmt"
)

// Feature columns of the diabetes dataset, in the order
// the model is trained and scored with.
var FeatureColumns = []string{
	"Pregnancies",
	"PlasmaGlucose",
	"DiastolicBloodPressure",
	"TricepsThickness",
	"SerumInsulin",
	"BMI",
	"DiabetesPedigree",
	"Age",
}

// LabelColumn holds the binary diagnosis label.
const LabelColumn = "Diabetic"

var ErrMissingColumn = errors.New("column not found")

// Table is an in-memory table of numeric records sharing one header.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) columnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Column extracts a single column as a vector.
//
// It returns ErrMissingColumn when the table has no such column.
func (t Table) Column(name string) ([]float64, error) {
	idx, ok := t.columnIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	col := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row[idx]
	}
	return col, nil
}

// Select projects the table onto the given columns, in the given order.
//
// It returns ErrMissingColumn when any column is absent.
func (t Table) Select(columns []string) (Table, error) {
	indices := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := t.columnIndex(name)
		if !ok {
			return Table{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		indices[i] = idx
	}

	rows := make([][]float64, len(t.Rows))
	for i, row := range t.Rows {
		selected := make([]float64, len(indices))
		for j, idx := range indices {
			selected[j] = row[idx]
		}
		rows[i] = selected
	}
	return Table{Columns: columns, Rows: rows}, nil
}

// FeaturesLabel partitions the table into the feature matrix
// (FeatureColumns, in order) and the label vector (LabelColumn).
func (t Table) FeaturesLabel() (features [][]float64, label []float64, err error) {
	x, err := t.Select(FeatureColumns)
	if err != nil {
		return nil, nil, err
	}
	y, err := t.Column(LabelColumn)
	if err != nil {
		return nil, nil, err
	}
	return x.Rows, y, nil
}
