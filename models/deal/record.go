package deal

import (
	"fmt"
	"strings"
)

// UNCATEGORIZED_GROUP is the group key of records without a neighborhood.
const UNCATEGORIZED_GROUP = "Uncategorized"

// Record represents one restaurant and its happy hour deal.
type Record struct {
	ID       int    `json:"id"`
	GroupKey string `json:"group_key"`

	Name         string `json:"name"`
	HomepageURL  string `json:"homepage_url"`
	MapsURL      string `json:"maps_url"`
	Neighborhood string `json:"neighborhood"`
	OverallDeal  string `json:"overall_deal"`

	Monday    string `json:"mon"`
	Tuesday   string `json:"tue"`
	Wednesday string `json:"wed"`
	Thursday  string `json:"thu"`
	Friday    string `json:"fri"`
}

// Day returns the raw cell value for a weekday.
func (r Record) Day(d Weekday) string {
	switch d {
	case Monday:
		return r.Monday
	case Tuesday:
		return r.Tuesday
	case Wednesday:
		return r.Wednesday
	case Thursday:
		return r.Thursday
	case Friday:
		return r.Friday
	}
	return ""
}

// IsYes reports whether the day cell is a plain "yes". Only this counts as a
// match when filtering by day.
func (r Record) IsYes(d Weekday) bool {
	return strings.EqualFold(strings.TrimSpace(r.Day(d)), "yes")
}

// HasDeal reports whether the day cell has anything to display.
func (r Record) HasDeal(d Weekday) bool {
	return strings.TrimSpace(r.Day(d)) != ""
}

func (r *Record) ToString() string {
	return fmt.Sprintf("Record(id=%d, name=%s, group=%s)", r.ID, r.Name, r.GroupKey)
}
