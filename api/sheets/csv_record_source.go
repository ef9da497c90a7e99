package sheets

import (
	"bytes"
	"context"

	"hh-server/api"
	"hh-server/models/deal"
)

// CSVRecordSource fetches a published spreadsheet as CSV over HTTP.
type CSVRecordSource struct {
	*api.HTTPClient
}

// NewCSVRecordSource creates a new instance of CSVRecordSource. The client
// base URL is prepended to every url passed to Load, so it is usually empty.
func NewCSVRecordSource(httpClient *api.HTTPClient) *CSVRecordSource {
	return &CSVRecordSource{
		HTTPClient: httpClient,
	}
}

// Load fetches url and parses it into rows in file order. Every call goes to
// the network.
func (s *CSVRecordSource) Load(ctx context.Context, url string) ([]deal.RawRow, error) {
	body, err := s.Get(ctx, url, map[string]string{"Accept": "text/csv"})
	if err != nil {
		return nil, &LoadError{URL: url, Cause: err}
	}

	rows, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, &LoadError{URL: url, Cause: err}
	}
	return rows, nil
}
