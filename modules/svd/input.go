package svd

import (
	"encoding/json"
	"fmt"
	"os"
)

// InputRecord is the JSON layout of a decomposition statement: the input
// matrix together with the claimed factors.  V is stored already
// transposed, so the claim reads m = u * diag(d) * v.
type InputRecord struct {
	M [][]float64 `json:"m"`
	U [][]float64 `json:"u"`
	V [][]float64 `json:"v"`
	D []float64   `json:"d"`
}

func ReadInputRecord(path string) (*InputRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input record: %w", err)
	}

	record := new(InputRecord)
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("parse input record: %w", err)
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

func (rec *InputRecord) WriteFile(path string) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode input record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write input record: %w", err)
	}
	return nil
}

// Validate checks the shapes of the record: m has to be square, u and v
// have to match it, and the number of singular values must not exceed the
// matrix size.
func (rec *InputRecord) Validate() error {
	n := len(rec.M)
	if n == 0 {
		return fmt.Errorf("input matrix is empty")
	}
	for i, row := range rec.M {
		if len(row) != n {
			return fmt.Errorf("input matrix is not square: row %d has %d entries, want %d", i, len(row), n)
		}
	}

	if err := checkGridShape("u", rec.U, n); err != nil {
		return err
	}
	if err := checkGridShape("v", rec.V, n); err != nil {
		return err
	}

	if len(rec.D) == 0 || len(rec.D) > n {
		return fmt.Errorf("want between 1 and %d singular values, got %d", n, len(rec.D))
	}

	return nil
}

func checkGridShape(name string, rows [][]float64, n int) error {
	if len(rows) != n {
		return fmt.Errorf("matrix %s has %d rows, want %d", name, len(rows), n)
	}
	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("matrix %s row %d has %d entries, want %d", name, i, len(row), n)
		}
	}
	return nil
}
