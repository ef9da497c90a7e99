package pin

import "fmt"

// Pin is a geocoded map marker for one record of a loaded data set.
type Pin struct {
	Generation uint64  `json:"generation"`
	RecordID   int     `json:"record_id"`
	Address    string  `json:"address"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lng"`
}

func (p *Pin) ToString() string {
	return fmt.Sprintf("Pin(gen=%d, id=%d, address=%s, lat=%f, lon=%f)",
		p.Generation, p.RecordID, p.Address, p.Lat, p.Lon)
}
