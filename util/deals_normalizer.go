package util

import (
	"sort"
	"strings"

	"hh-server/models/deal"
)

// NormalizeDeals turns raw sheet rows into records. Rows are stable-sorted by
// neighborhood, case-insensitively, and ids follow the sorted position.
func NormalizeDeals(rows []deal.RawRow) []deal.Record {
	sorted := make([]deal.RawRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Field(deal.COLUMN_NEIGHBORHOOD)) <
			strings.ToLower(sorted[j].Field(deal.COLUMN_NEIGHBORHOOD))
	})

	records := make([]deal.Record, len(sorted))
	for i, row := range sorted {
		records[i] = deal.Record{
			ID:           i,
			GroupKey:     GroupKeyFor(row.Field(deal.COLUMN_NEIGHBORHOOD)),
			Name:         row.Field(deal.COLUMN_RESTAURANT_NAME),
			HomepageURL:  row.Field(deal.COLUMN_RESTAURANT_URL),
			MapsURL:      row.Field(deal.COLUMN_MAPS_URL),
			Neighborhood: row.Field(deal.COLUMN_NEIGHBORHOOD),
			OverallDeal:  row.Field(deal.COLUMN_DEAL),
			Monday:       row.Field(deal.COLUMN_MON),
			Tuesday:      row.Field(deal.COLUMN_TUE),
			Wednesday:    row.Field(deal.COLUMN_WED),
			Thursday:     row.Field(deal.COLUMN_THU),
			Friday:       row.Field(deal.COLUMN_FRI),
		}
	}
	return records
}

// GroupKeyFor trims a neighborhood name; blank names go to UNCATEGORIZED_GROUP.
func GroupKeyFor(neighborhood string) string {
	key := strings.TrimSpace(neighborhood)
	if key == "" {
		return deal.UNCATEGORIZED_GROUP
	}
	return key
}
