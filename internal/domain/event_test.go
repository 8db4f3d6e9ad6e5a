package domain

import "testing"

func TestNewDone_BucketsResultsByDomain(t *testing.T) {
	results := []SearchCandidate{
		{Domain: DomainFestival, ID: "f1"},
		{Domain: DomainAttraction, ID: "a1"},
		{Domain: DomainAttraction, ID: "a2"},
	}

	ev := NewDone("answer", 7, results, nil)

	if len(ev.Festivals) != 1 || len(ev.Attractions) != 2 || len(ev.Restaurants) != 0 {
		t.Errorf("bucketing wrong: %d/%d/%d", len(ev.Festivals), len(ev.Attractions), len(ev.Restaurants))
	}
	if !ev.HasFestivals || !ev.HasAttractions || ev.HasRestaurants {
		t.Errorf("has flags wrong: %v/%v/%v", ev.HasFestivals, ev.HasAttractions, ev.HasRestaurants)
	}
	if ev.ConversID != 7 {
		t.Errorf("ConversID = %d, want 7", ev.ConversID)
	}
	if ev.FullResponse != "answer" {
		t.Errorf("FullResponse = %q", ev.FullResponse)
	}
}

func TestNewDone_SlicesNeverNil(t *testing.T) {
	ev := NewDone("", 0, nil, nil)

	if ev.Results == nil || ev.Festivals == nil || ev.Attractions == nil ||
		ev.Restaurants == nil || ev.MapMarkers == nil {
		t.Error("done event must carry arrays, never null")
	}
}

func TestTerminalFlags(t *testing.T) {
	tests := []struct {
		ev   Event
		want bool
	}{
		{NewStatus(EventSearching, "m"), false},
		{NewStatus(EventRandom, "m"), false},
		{NewStatus(EventGenerating, "m"), false},
		{NewFound(SearchCandidate{}), false},
		{NewChunk("x"), false},
		{NewDone("", 0, nil, nil), true},
		{NewError("boom"), true},
	}

	for _, tt := range tests {
		if got := tt.ev.Terminal(); got != tt.want {
			t.Errorf("%s: Terminal() = %v, want %v", tt.ev.Kind(), got, tt.want)
		}
	}
}
