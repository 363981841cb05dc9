package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"phynet/internal/solver"
)

type exportData struct {
	Model    string      `json:"model"`
	Analysis string      `json:"analysis"`
	Method   string      `json:"method"`
	Dt       float64     `json:"dt"`
	Duration float64     `json:"duration"`
	Labels   []string    `json:"labels"`
	Times    []float64   `json:"times"`
	Values   [][]float64 `json:"values"`
}

// ExportJSON writes a run as one self-contained JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, result *solver.Result) error {
	data := exportData{
		Model:    meta.Model,
		Analysis: meta.Analysis,
		Method:   meta.Method,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Labels:   result.Labels,
		Times:    result.Times,
		Values:   result.Values,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a run's traces as CSV with a time column first.
func ExportCSV(w io.Writer, result *solver.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(append([]string{"time"}, result.Labels...)); err != nil {
		return err
	}
	for i, t := range result.Times {
		row := make([]string, 0, len(result.Labels)+1)
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, val := range result.Values[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
