package util

import (
	"net/url"
	"strings"
)

const MAPS_ADDRESS_QUERY_ARG = "q"

// ExtractAddress pulls the street address out of a maps link (?q=<address>).
// It reports false when the link is empty, unparsable or has no address.
func ExtractAddress(mapsURL string) (string, bool) {
	mapsURL = strings.TrimSpace(mapsURL)
	if mapsURL == "" {
		return "", false
	}
	u, err := url.Parse(mapsURL)
	if err != nil {
		return "", false
	}
	address := strings.TrimSpace(u.Query().Get(MAPS_ADDRESS_QUERY_ARG))
	if address == "" {
		return "", false
	}
	return address, true
}
