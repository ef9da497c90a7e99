package filter

import (
	"sync"
	"time"

	"hh-server/models/deal"
)

// Mode is what the weekday control surface currently shows.
type Mode string

const (
	MODE_ALL_DAYS      Mode = "ALL_DAYS"
	MODE_SPECIFIC_DAYS Mode = "SPECIFIC_DAYS"
	MODE_HAPPENING_NOW Mode = "HAPPENING_NOW"
)

// Snapshot is an immutable copy of the filter state.
type Snapshot struct {
	ActiveWeekdays []deal.Weekday `json:"active_weekdays"`
	HappeningNow   bool           `json:"happening_now"`
}

// Mode derives the control-surface mode of the snapshot.
func (s Snapshot) Mode() Mode {
	if s.HappeningNow {
		return MODE_HAPPENING_NOW
	}
	if len(s.ActiveWeekdays) > 0 {
		return MODE_SPECIFIC_DAYS
	}
	return MODE_ALL_DAYS
}

// State holds the selected weekdays and the happening-now switch. It starts
// as "show all" and only changes through the transition methods.
type State struct {
	mu               sync.RWMutex
	active           map[deal.Weekday]struct{}
	happeningNow     bool
	autoHappeningNow bool
}

// NewState creates a filter in ALL_DAYS. With autoHappeningNow, selecting
// exactly today's weekday switches happening-now on.
func NewState(autoHappeningNow bool) *State {
	return &State{
		active:           make(map[deal.Weekday]struct{}),
		autoHappeningNow: autoHappeningNow,
	}
}

// ToggleWeekday flips d in the selected set. Happening-now is cleared first.
func (s *State) ToggleWeekday(d deal.Weekday, today time.Weekday) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.happeningNow = false
	if _, ok := s.active[d]; ok {
		delete(s.active, d)
	} else {
		s.active[d] = struct{}{}
	}

	if s.autoHappeningNow && len(s.active) == 1 {
		if todayCode, ok := deal.WeekdayFromTime(today); ok {
			if _, selected := s.active[todayCode]; selected {
				s.happeningNow = true
			}
		}
	}
	return s.snapshotLocked().Mode()
}

// SelectAll resets to ALL_DAYS.
func (s *State) SelectAll() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = make(map[deal.Weekday]struct{})
	s.happeningNow = false
	return MODE_ALL_DAYS
}

// SetHappeningNow switches happening-now on or off. Turning it on selects
// today's weekday, or nothing on a weekend. Turning it off shows all days.
func (s *State) SetHappeningNow(on bool, today time.Weekday) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = make(map[deal.Weekday]struct{})
	s.happeningNow = on
	if on {
		if todayCode, ok := deal.WeekdayFromTime(today); ok {
			s.active[todayCode] = struct{}{}
		}
	}
	return s.snapshotLocked().Mode()
}

// Snapshot returns a copy safe to use without holding the lock.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	active := make([]deal.Weekday, 0, len(s.active))
	for _, d := range deal.Weekdays {
		if _, ok := s.active[d]; ok {
			active = append(active, d)
		}
	}
	return Snapshot{ActiveWeekdays: active, HappeningNow: s.happeningNow}
}

// DisplayedWeekdays returns the weekday buttons that should appear selected.
// Empty means the ALL button.
func DisplayedWeekdays(s Snapshot, today time.Weekday) []deal.Weekday {
	if s.HappeningNow {
		if todayCode, ok := deal.WeekdayFromTime(today); ok {
			return []deal.Weekday{todayCode}
		}
		return []deal.Weekday{}
	}
	return s.ActiveWeekdays
}
