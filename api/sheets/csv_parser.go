package sheets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"hh-server/models/deal"
)

var ErrMissingHeader = errors.New("csv document has no header row")

const utf8BOM = "\ufeff"

// ParseCSV reads a CSV document whose first row names the fields.
// Rows shorter than the header are padded with empty cells.
func ParseCSV(r io.Reader) ([]deal.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows []deal.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", len(rows)+2, err)
		}

		row := make(deal.RawRow, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
