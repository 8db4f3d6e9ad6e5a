package classify

import (
	"testing"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

func TestClassify_Intent(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want domain.Intent
	}{
		{"comparison vs", "Gyeongbokgung vs Changdeokgung, which should I pick?", domain.IntentComparison},
		{"comparison phrase", "which is better for a first visit, Hongdae or Gangnam", domain.IntentComparison},
		{"comparison korean", "경복궁 창덕궁 비교해줘", domain.IntentComparison},
		{"advice", "any tips on Korean dining etiquette?", domain.IntentGeneralAdvice},
		{"advice korean", "한국 여행 팁 알려줘", domain.IntentGeneralAdvice},
		{"advice suppressed by place name", "tips for visiting gyeongbokgung palace", domain.IntentPlaceSearch},
		{"recommendation", "recommend some spots in Seoul", domain.IntentRecommendation},
		{"recommendation korean", "서울 명소 추천", domain.IntentRecommendation},
		{"recommendation by count only", "show me 5 places in Seoul", domain.IntentRecommendation},
		{"place search default", "tell me about Namsan Seoul Tower", domain.IntentPlaceSearch},
		{"empty falls through", "", domain.IntentPlaceSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q).Intent = %q, want %q", tt.text, got.Intent, tt.want)
			}
		})
	}
}

func TestClassify_ComparisonWinsOverRecommendation(t *testing.T) {
	c := New()

	// Both marker sets fire; the rule order decides.
	got := c.Classify("recommend which is better, Everland or Lotte World")
	if got.Intent != domain.IntentComparison {
		t.Errorf("expected comparison, got %q", got.Intent)
	}
}

func TestClassify_VsNotMatchedInsideWords(t *testing.T) {
	c := New()

	got := c.Classify("tell me about the tvshow filming location")
	if got.Intent == domain.IntentComparison {
		t.Error("'vs' inside a word must not trigger comparison")
	}
}

func TestClassify_RequestedCount(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"explicit count", "recommend 5 places in seoul", 5},
		{"korean unit", "서울 명소 3곳 추천", 3},
		{"default applied", "recommend some attractions", domain.DefaultRecommendationCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if got.RequestedCount != tt.want {
				t.Errorf("Classify(%q).RequestedCount = %d, want %d", tt.text, got.RequestedCount, tt.want)
			}
		})
	}
}

func TestClassify_NoDefaultCountForPlaceSearch(t *testing.T) {
	c := New()

	got := c.Classify("tell me about Bukchon Hanok Village")
	if got.RequestedCount != 0 {
		t.Errorf("place_search must not get a default count, got %d", got.RequestedCount)
	}
}

func TestClassify_RestaurantHint(t *testing.T) {
	c := New()

	tests := []struct {
		text string
		want bool
	}{
		{"recommend a good restaurant in Hongdae", true},
		{"맛집 추천해줘", true},
		{"where can I eat near Myeongdong", true},
		{"recommend attractions in Seoul", false},
	}

	for _, tt := range tests {
		got := c.Classify(tt.text)
		if got.RestaurantHint != tt.want {
			t.Errorf("Classify(%q).RestaurantHint = %v, want %v", tt.text, got.RestaurantHint, tt.want)
		}
	}
}

func TestClassify_SearchKeyword(t *testing.T) {
	c := New()

	got := c.Classify("I want to visit the Gyeongbokgung Palace in Seoul")
	want := "gyeongbokgung palace seoul"
	if got.Keyword != want {
		t.Errorf("Keyword = %q, want %q", got.Keyword, want)
	}
}

func TestClassify_KeywordFallbackWhenAllStopwords(t *testing.T) {
	c := New()

	text := "can i go"
	got := c.Classify(text)
	if got.Keyword != text {
		t.Errorf("expected original text %q when cleaning leaves nothing, got %q", text, got.Keyword)
	}
}
