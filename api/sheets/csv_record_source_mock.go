package sheets

import (
	"context"
	"os"

	"hh-server/models/deal"
)

// CSVRecordSourceMock reads the sheet from a CSV file on disk, ignoring url.
type CSVRecordSourceMock struct {
	path string
}

// NewCSVRecordSourceMock creates a new instance of CSVRecordSourceMock
func NewCSVRecordSourceMock(path string) *CSVRecordSourceMock {
	return &CSVRecordSourceMock{path: path}
}

func (m *CSVRecordSourceMock) Load(ctx context.Context, url string) ([]deal.RawRow, error) {
	f, err := os.Open(m.path)
	if err != nil {
		return nil, &LoadError{URL: m.path, Cause: err}
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return nil, &LoadError{URL: m.path, Cause: err}
	}
	return rows, nil
}
