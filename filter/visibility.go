package filter

import (
	"time"

	"hh-server/models/deal"
)

// EffectiveWeekdays resolves which days restrict visibility. Happening-now on
// a weekday wins over the selected set; nil means no restriction.
func EffectiveWeekdays(s Snapshot, today time.Weekday) []deal.Weekday {
	if s.HappeningNow {
		if todayCode, ok := deal.WeekdayFromTime(today); ok {
			return []deal.Weekday{todayCode}
		}
	}
	if len(s.ActiveWeekdays) > 0 {
		return s.ActiveWeekdays
	}
	return nil
}

// IsVisible decides whether r is shown under s. A day matches only on a
// plain "yes"; free-text day notes never match.
func IsVisible(r deal.Record, s Snapshot, today time.Weekday) bool {
	days := EffectiveWeekdays(s, today)
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if r.IsYes(d) {
			return true
		}
	}
	return false
}

// Predicate binds s and today into a per-record check.
func Predicate(s Snapshot, today time.Weekday) func(deal.Record) bool {
	return func(r deal.Record) bool {
		return IsVisible(r, s, today)
	}
}

// GroupVisible reports whether any member of g is visible.
func GroupVisible(g deal.Group, isVisible func(deal.Record) bool) bool {
	for _, m := range g.Members {
		if isVisible(m) {
			return true
		}
	}
	return false
}
