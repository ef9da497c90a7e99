package deal

// Column names recognized in the deals sheet. Matching is exact and case-sensitive.
const (
	COLUMN_NEIGHBORHOOD    = "Neighborhood"
	COLUMN_RESTAURANT_NAME = "RestaurantName"
	COLUMN_RESTAURANT_URL  = "RestaurantURL"
	COLUMN_MAPS_URL        = "MapsURL"
	COLUMN_DEAL            = "Deal"
	COLUMN_MON             = "Mon"
	COLUMN_TUE             = "Tue"
	COLUMN_WED             = "Wed"
	COLUMN_THU             = "Thu"
	COLUMN_FRI             = "Fri"
)

// RawRow is one data row of the sheet keyed by header name.
type RawRow map[string]string

// Field returns the cell for a column, or "" when the column is missing.
func (r RawRow) Field(column string) string {
	if r == nil {
		return ""
	}
	return r[column]
}
