package chat

import (
	"strings"
	"testing"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

func TestValidatePromptTable(t *testing.T) {
	if err := validatePromptTable(); err != nil {
		t.Fatalf("prompt table incomplete: %v", err)
	}
}

func TestBuildPrompt_PlaceSearchUsesBestDomain(t *testing.T) {
	best := domain.NewCandidate(domain.DomainFestival, "f1", 0.9, 0.5, domain.Payload{
		Title: "Seoul Lantern Festival", StartDate: "2026-11-01", EndDate: "2026-11-15",
	})

	got := buildPrompt(domain.ClassifiedQuery{
		Intent: domain.IntentPlaceSearch, Keyword: "lantern festival",
	}, &best, nil)

	if !strings.Contains(got, "Seoul Lantern Festival") {
		t.Errorf("prompt must embed the record title, got %q", got)
	}
	if !strings.Contains(got, "2026-11-01") {
		t.Errorf("festival prompt must embed dates, got %q", got)
	}
}

func TestBuildPrompt_AdviceRestaurantHint(t *testing.T) {
	plain := buildPrompt(domain.ClassifiedQuery{
		Intent: domain.IntentGeneralAdvice, Keyword: "etiquette",
	}, nil, nil)
	hinted := buildPrompt(domain.ClassifiedQuery{
		Intent: domain.IntentGeneralAdvice, Keyword: "etiquette", RestaurantHint: true,
	}, nil, nil)

	if plain == hinted {
		t.Error("restaurant hint must select the dining template")
	}
	if !strings.Contains(hinted, "dining") {
		t.Errorf("hinted prompt should be dining-specific, got %q", hinted)
	}
}

func TestBuildPrompt_RecommendationListsTitles(t *testing.T) {
	sampled := []domain.SearchCandidate{
		{Domain: domain.DomainRestaurant, Title: "Alpha"},
		{Domain: domain.DomainRestaurant, Title: "Beta"},
	}

	got := buildPrompt(domain.ClassifiedQuery{
		Intent: domain.IntentRecommendation, Keyword: "맛집 추천", RestaurantHint: true,
	}, nil, sampled)

	if !strings.Contains(got, "1. Alpha") || !strings.Contains(got, "2. Beta") {
		t.Errorf("prompt must list sampled titles in order, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("한", maxDescriptionRunes+10)
	got := truncate(long, maxDescriptionRunes)
	if runes := []rune(got); len(runes) != maxDescriptionRunes+3 {
		t.Errorf("expected %d runes plus ellipsis, got %d", maxDescriptionRunes, len(runes))
	}

	short := "short"
	if truncate(short, maxDescriptionRunes) != short {
		t.Error("short strings must pass through unchanged")
	}
}
