package models

import "strings"

// RawRecord is one listing or user object exactly as the API returned
// it. Field names vary between backend versions (price vs list_price,
// rooms vs room_count, ...), so the shape stays an undecoded map until
// the normalizer resolves it into a canonical struct.
type RawRecord map[string]any

// SyntheticIDPrefix marks identifiers derived from record content when
// the API supplied none. A synthetic ID is only as stable as the raw
// record itself and may differ between fetches of the same listing.
const SyntheticIDPrefix = "tmp-"

// Listing is the normalized property record used by every layer past
// the gateway. All numeric fields are finite and non-negative.
type Listing struct {
	ID           string
	RealtorID    int64
	Address      string
	City         string
	Price        float64
	Rooms        float64
	LivingArea   float64
	LotSize      float64
	YearBuilt    int
	Description  string
	PropertyType string
	ImageURL     string
}

// HasSyntheticID reports whether the listing's identifier was derived
// locally rather than assigned by the server.
func (l *Listing) HasSyntheticID() bool {
	return strings.HasPrefix(l.ID, SyntheticIDPrefix)
}

// ResultPage is one visible page of the filtered listing set.
type ResultPage struct {
	Items     []*Listing
	Total     int
	Page      int
	PageCount int
}
