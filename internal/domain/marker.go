package domain

// MapMarker is a read-only map projection of a fused result. Markers are
// rebuilt per request and never stored.
type MapMarker struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Type      PlaceDomain `json:"type"`
	Address   string      `json:"address,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	StartDate string      `json:"start_date,omitempty"`
	EndDate   string      `json:"end_date,omitempty"`
}

// BuildMarkers projects candidates onto map markers. Candidates without both
// coordinates present and non-zero are silently excluded.
func BuildMarkers(candidates []SearchCandidate) []MapMarker {
	markers := make([]MapMarker, 0, len(candidates))
	for _, c := range candidates {
		if c.Payload.Latitude == 0 || c.Payload.Longitude == 0 {
			continue
		}
		m := MapMarker{
			ID:        c.ID,
			Title:     c.Title,
			Latitude:  c.Payload.Latitude,
			Longitude: c.Payload.Longitude,
			Type:      c.Domain,
		}
		switch c.Domain {
		case DomainFestival:
			m.StartDate = c.Payload.StartDate
			m.EndDate = c.Payload.EndDate
		case DomainAttraction, DomainRestaurant:
			m.Address = c.Payload.Address
			m.Phone = c.Payload.Phone
		}
		markers = append(markers, m)
	}
	return markers
}
