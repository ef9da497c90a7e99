package deal

// Group is a named bucket of records sharing a neighborhood key.
type Group struct {
	Key     string   `json:"key"`
	Members []Record `json:"members"`
}
