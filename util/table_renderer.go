package util

import (
	"io"
	"strings"

	"hh-server/models/deal"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableRenderer prints one table per visible group to a writer.
type TableRenderer struct {
	out  io.Writer
	days []deal.Weekday
}

// NewTableRenderer builds a renderer showing the given day columns. With no
// days every weekday column is shown.
func NewTableRenderer(out io.Writer, days []deal.Weekday) *TableRenderer {
	if len(days) == 0 {
		days = deal.Weekdays
	}
	return &TableRenderer{out: out, days: days}
}

// Render writes the groups that have at least one visible member, in order.
func (tr *TableRenderer) Render(groups []deal.Group, isVisible func(deal.Record) bool) error {
	header := table.Row{"#", "Restaurant", "Deal"}
	for _, d := range tr.days {
		header = append(header, strings.ToUpper(string(d)))
	}

	for _, g := range groups {
		var rows []table.Row
		for _, r := range g.Members {
			if !isVisible(r) {
				continue
			}
			row := table.Row{r.ID, r.Name, r.OverallDeal}
			for _, d := range tr.days {
				row = append(row, strings.TrimSpace(r.Day(d)))
			}
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			continue
		}

		t := table.NewWriter()
		t.SetOutputMirror(tr.out)
		t.SetTitle(g.Key)
		t.Style().Title.Format = text.FormatDefault
		t.AppendHeader(header)
		t.AppendRows(rows)
		t.Render()
	}
	return nil
}
