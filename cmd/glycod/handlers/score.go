package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/glyco-ml/glyco/pkg/api/types/errors"
	"github.com/glyco-ml/glyco/pkg/api/types/inference"
	"github.com/glyco-ml/glyco/pkg/model"
)

// ScoreHandler scores rows with the loaded model.
//
// It accepts two request shapes:
//
//   - the matrix shape: {"input_data": {"columns": [...], "index": [...], "data": [[...], ...]}}
//   - a bare record list: [{"glucose": 148, ...}, ...]
//
// Predictions are returned in request order.
func ScoreHandler(a *model.Artifact) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if ct := req.Header.Get("content-type"); !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			return apierr.BadRequest(
				"unexpected content type. it should be application/json", nil,
			)
		}

		body, err := io.ReadAll(req.Body)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		rows, err := parseRows(body, a.Model.Columns)
		if err != nil {
			return apierr.BadRequest(err.Error(), err)
		}

		predictions, err := a.Model.Predict(rows)
		if err != nil {
			return apierr.BadRequest(err.Error(), err)
		}

		return c.JSON(http.StatusOK, inference.ScoreResponse{Predictions: predictions})
	}
}

// RouteNotFound answers requests for paths this server does not serve.
func RouteNotFound() echo.HandlerFunc {
	return func(c echo.Context) error {
		return apierr.NotFound(apierr.WithAdvice(
			"this server serves POST /score/ and GET /health/ only",
		))
	}
}

// HealthHandler reports that the server holds a servable model.
func HealthHandler(a *model.Artifact) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":    "ok",
			"trainedAt": a.TrainedAt,
		})
	}
}

// parseRows extracts the sample matrix from the request body and
// reorders each row to the model's column order.
func parseRows(body []byte, columns []string) ([][]float64, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}

	if trimmed[0] == '[' {
		records := []map[string]float64{}
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("can not understand the requested json: %s", err)
		}
		rows := make([][]float64, len(records))
		for i, rec := range records {
			row := make([]float64, len(columns))
			for j, col := range columns {
				v, ok := rec[col]
				if !ok {
					return nil, fmt.Errorf("record %d is missing feature %q", i, col)
				}
				row[j] = v
			}
			rows[i] = row
		}
		return rows, nil
	}

	sreq := new(inference.ScoreRequest)
	if err := json.Unmarshal(trimmed, sreq); err != nil {
		return nil, fmt.Errorf("can not understand the requested json: %s", err)
	}
	in := sreq.InputData
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("input_data.data is empty")
	}

	// map the request's column order onto the model's
	at := make([]int, len(columns))
	for j, col := range columns {
		found := -1
		for k, reqcol := range in.Columns {
			if reqcol == col {
				found = k
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("input_data.columns is missing feature %q", col)
		}
		at[j] = found
	}

	rows := make([][]float64, len(in.Data))
	for i, data := range in.Data {
		if len(data) != len(in.Columns) {
			return nil, fmt.Errorf(
				"input_data.data[%d] has %d fields, columns name %d", i, len(data), len(in.Columns),
			)
		}
		row := make([]float64, len(columns))
		for j := range columns {
			row[j] = data[at[j]]
		}
		rows[i] = row
	}
	return rows, nil
}
