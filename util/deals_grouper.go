package util

import "hh-server/models/deal"

// GroupDeals buckets records by group key. Groups come out in first-seen
// order and members keep their input order.
func GroupDeals(records []deal.Record) []deal.Group {
	var groups []deal.Group
	index := make(map[string]int)

	for _, r := range records {
		i, ok := index[r.GroupKey]
		if !ok {
			i = len(groups)
			index[r.GroupKey] = i
			groups = append(groups, deal.Group{Key: r.GroupKey})
		}
		groups[i].Members = append(groups[i].Members, r)
	}
	return groups
}
