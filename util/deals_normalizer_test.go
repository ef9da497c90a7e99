package util

import (
	"fmt"
	"testing"

	"hh-server/models/deal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(neighborhood, name string) deal.RawRow {
	return deal.RawRow{
		deal.COLUMN_NEIGHBORHOOD:    neighborhood,
		deal.COLUMN_RESTAURANT_NAME: name,
	}
}

func TestNormalizeDeals_ContiguousIDs(t *testing.T) {
	for _, n := range []int{0, 1, 5, 40} {
		t.Run(fmt.Sprintf("%d rows", n), func(t *testing.T) {
			rows := make([]deal.RawRow, n)
			for i := range rows {
				rows[i] = row(fmt.Sprintf("N%d", (i*7)%5), fmt.Sprintf("R%d", i))
			}

			records := NormalizeDeals(rows)

			require.Len(t, records, n)
			for i, r := range records {
				assert.Equal(t, i, r.ID)
			}
		})
	}
}

func TestNormalizeDeals_StableCaseInsensitiveSort(t *testing.T) {
	rows := []deal.RawRow{
		row("Midtown", "first"),
		row("midtown", "second"),
		row("Buckhead", "third"),
	}

	records := NormalizeDeals(rows)

	neighborhoods := []string{}
	for _, r := range records {
		neighborhoods = append(neighborhoods, r.Neighborhood)
	}
	assert.Equal(t, []string{"Buckhead", "Midtown", "midtown"}, neighborhoods)
	assert.Equal(t, "first", records[1].Name)
	assert.Equal(t, "second", records[2].Name)
}

func TestNormalizeDeals_GroupKeys(t *testing.T) {
	tests := []struct {
		name         string
		neighborhood string
		want         string
	}{
		{"blank", "", "Uncategorized"},
		{"whitespace only", "   ", "Uncategorized"},
		{"padded", "  Midtown  ", "Midtown"},
		{"plain", "Decatur", "Decatur"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			records := NormalizeDeals([]deal.RawRow{row(test.neighborhood, "A")})
			assert.Equal(t, test.want, records[0].GroupKey)
		})
	}
}

func TestNormalizeDeals_MissingColumnsAreEmpty(t *testing.T) {
	records := NormalizeDeals([]deal.RawRow{{"Unrelated": "x"}, nil})

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, deal.UNCATEGORIZED_GROUP, r.GroupKey)
		assert.Empty(t, r.Name)
		assert.Empty(t, r.MapsURL)
		assert.Empty(t, r.Friday)
	}
}

func TestNormalizeDeals_CopiesFields(t *testing.T) {
	records := NormalizeDeals([]deal.RawRow{{
		deal.COLUMN_NEIGHBORHOOD:    "Midtown",
		deal.COLUMN_RESTAURANT_NAME: "Ecco",
		deal.COLUMN_RESTAURANT_URL:  "https://ecco.example",
		deal.COLUMN_MAPS_URL:        "https://maps.google.com/?q=40+7th+St",
		deal.COLUMN_DEAL:            "Half off",
		deal.COLUMN_MON:             "yes",
		deal.COLUMN_TUE:             "",
		deal.COLUMN_WED:             "maybe later",
		deal.COLUMN_THU:             "YES",
		deal.COLUMN_FRI:             "no",
	}})

	r := records[0]
	assert.Equal(t, "Ecco", r.Name)
	assert.Equal(t, "https://ecco.example", r.HomepageURL)
	assert.Equal(t, "Half off", r.OverallDeal)
	assert.True(t, r.IsYes(deal.Monday))
	assert.False(t, r.HasDeal(deal.Tuesday))
	assert.True(t, r.HasDeal(deal.Wednesday))
	assert.False(t, r.IsYes(deal.Wednesday))
	assert.True(t, r.IsYes(deal.Thursday))
}

func TestNormalizeDeals_DoesNotMutateInput(t *testing.T) {
	rows := []deal.RawRow{row("Midtown", "A"), row("Buckhead", "B")}

	NormalizeDeals(rows)

	assert.Equal(t, "A", rows[0].Field(deal.COLUMN_RESTAURANT_NAME))
	assert.Equal(t, "B", rows[1].Field(deal.COLUMN_RESTAURANT_NAME))
}
