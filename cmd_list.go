package main

import (
	"context"
	"io"

	"hh-server/api/sheets"
	"hh-server/config"
	"hh-server/di"
	"hh-server/filter"
	"hh-server/models/deal"
	services "hh-server/service"
	"hh-server/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listDays []string
	listNow  bool
)

// listCmd prints the directory as tables, one per neighborhood.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the deals grouped by neighborhood",
	Long: `Loads the deals sheet once and prints a table per neighborhood.

Example:
  hh-server list --day mon --day fri
  hh-server list --now`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source := di.NewRecordSource(cfg, logger)
		return listDeals(cmd.Context(), cmd.OutOrStdout(), source, cfg, logger, listDays, listNow)
	},
}

func init() {
	listCmd.Flags().StringSliceVarP(&listDays, "day", "d", nil, "only show deals on these weekdays (mon..fri)")
	listCmd.Flags().BoolVar(&listNow, "now", false, "only show deals happening today")
}

// listDeals loads the sheet without geocoding and renders the filtered groups.
func listDeals(ctx context.Context, out io.Writer, source sheets.RecordSource, cfg config.Config, logger *zap.Logger, days []string, now bool) error {
	dealService := services.NewDealService(source, cfg.SheetCSVURL, filter.NewState(false), cfg.Location(), nil, logger)
	if err := dealService.Reload(ctx); err != nil {
		return err
	}

	state := dealService.FilterState()
	today := dealService.Today()
	seen := make(map[deal.Weekday]bool, len(days))
	for _, raw := range days {
		d, err := deal.ParseWeekday(raw)
		if err != nil {
			return err
		}
		// a repeated --day would toggle the day back off
		if seen[d] {
			continue
		}
		seen[d] = true
		state.ToggleWeekday(d, today)
	}
	if now {
		state.SetHappeningNow(true, today)
	}

	columns := filter.DisplayedWeekdays(state.Snapshot(), today)
	return dealService.Render(util.NewTableRenderer(out, columns))
}
