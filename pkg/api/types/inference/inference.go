package inference

import (
	"github.com/glyco-ml/glyco/pkg/utils/cmp"
)

// MatrixInput is the row-major sample matrix sent to a scoring endpoint.
//
// Columns give the feature order of each row in Data.
// Index enumerates the rows; predictions are returned in the same order.
type MatrixInput struct {
	Columns []string    `json:"columns"`
	Index   []int       `json:"index"`
	Data    [][]float64 `json:"data"`
}

func (m MatrixInput) Equal(o MatrixInput) bool {
	return cmp.SliceEq(m.Columns, o.Columns) &&
		cmp.SliceEq(m.Index, o.Index) &&
		cmp.SliceEqWith(m.Data, o.Data, cmp.SliceEq[float64])
}

type ScoreRequest struct {
	InputData MatrixInput `json:"input_data"`
}

func (r ScoreRequest) Equal(o ScoreRequest) bool {
	return r.InputData.Equal(o.InputData)
}

type ScoreResponse struct {
	Predictions []int `json:"predictions"`
}

func (r ScoreResponse) Equal(o ScoreResponse) bool {
	return cmp.SliceEq(r.Predictions, o.Predictions)
}

// NewScoreRequest builds a ScoreRequest for rows sharing the given columns.
//
// Index is filled with 0..len(rows)-1.
func NewScoreRequest(columns []string, rows [][]float64) ScoreRequest {
	index := make([]int, len(rows))
	for i := range rows {
		index[i] = i
	}
	return ScoreRequest{
		InputData: MatrixInput{
			Columns: columns,
			Index:   index,
			Data:    rows,
		},
	}
}
