package models

import "strings"

// Location represents a single resolved store site: the identifiers from the
// input list plus the canonical address and coordinates returned by the
// geocoding service. Immutable once resolved.
type Location struct {
	SiteID           string  `json:"site_id"`
	Name             string  `json:"name"`
	InputAddress     string  `json:"input_address"`
	FormattedAddress string  `json:"formatted_address"`
	RegionCode       string  `json:"region_code"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// RegionOf derives the grouping key from a composed input address: the
// two-letter state code the address ends with.
func RegionOf(address string) string {
	trimmed := strings.TrimSpace(address)
	if len(trimmed) < 2 {
		return trimmed
	}
	return trimmed[len(trimmed)-2:]
}
