package services

import "hh-server/models/deal"

// RenderSink draws grouped records. It is called again whenever the filter
// changes, with a fresh visibility check.
type RenderSink interface {
	Render(groups []deal.Group, isVisible func(deal.Record) bool) error
}

// MapSink places and selects pins. Requests carry the data set generation so
// late answers for a replaced data set can be dropped.
type MapSink interface {
	RequestPin(generation uint64, recordID int, address string)
	Select(generation uint64, recordID int) bool
}

// generationPurger is implemented by map sinks that keep per-generation state.
type generationPurger interface {
	PurgeGeneration(generation uint64)
}
