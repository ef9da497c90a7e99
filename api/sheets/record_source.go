package sheets

import (
	"context"
	"fmt"

	"hh-server/models/deal"
)

// RecordSource defines how the deals sheet is loaded into raw rows.
type RecordSource interface {
	Load(ctx context.Context, url string) ([]deal.RawRow, error)
}

// LoadError is returned when the sheet could not be fetched or parsed.
type LoadError struct {
	URL   string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load deals from %q: %v", e.URL, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
