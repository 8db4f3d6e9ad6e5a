// Package classify maps raw chat messages to an intent plus extracted
// parameters. Classification is pure and never fails: unmatched input
// resolves to place_search.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

// countPattern matches an explicit requested count: a number followed by a
// unit word ("5 places", "3곳").
var countPattern = regexp.MustCompile(`(\d+)\s*(places|spots|개|곳|가지)`)

// Marker tables. Short single-word markers are matched as whole tokens,
// multi-word markers as substrings.
var (
	comparisonMarkers = []string{"vs", "versus", "which is better", "which one", "비교"}

	adviceMarkers = []string{
		"advice", "tip", "tips", "culture", "etiquette", "manners", "custom",
		"팁", "문화", "예절",
	}

	// Concrete place-name markers suppress the advice branch: "tips for
	// visiting gyeongbokgung palace" is a place question, not a culture one.
	placeNameMarkers = []string{
		"palace", "museum", "temple", "tower", "market", "village", "park",
		"궁", "박물관", "사찰", "타워", "시장",
	}

	recommendMarkers = []string{"recommend", "suggest", "추천", "가볼만한", "명소"}

	foodMarkers = []string{
		"restaurant", "food", "dining", "eat", "meal",
		"맛집", "식당", "음식", "먹거리",
	}

	// Stopwords removed when deriving the search keyword.
	keywordStopwords = map[string]struct{}{
		"the": {}, "a": {}, "an": {}, "i": {}, "me": {}, "my": {}, "we": {},
		"you": {}, "it": {}, "is": {}, "are": {}, "was": {}, "do": {},
		"want": {}, "to": {}, "go": {}, "visit": {}, "see": {}, "find": {},
		"show": {}, "tell": {}, "know": {}, "about": {}, "in": {}, "at": {},
		"on": {}, "of": {}, "for": {}, "please": {}, "can": {}, "what": {},
		"where": {}, "how": {},
	}
)

// message is the pre-parsed form a rule predicate inspects.
type message struct {
	lower  string
	tokens map[string]struct{}
	count  int
}

func (m message) has(markers []string) bool {
	for _, marker := range markers {
		// Short ASCII markers match as whole tokens so "vs" does not fire
		// inside unrelated words. Everything else (phrases, longer words,
		// Korean) matches as a substring.
		if isASCII(marker) && !strings.Contains(marker, " ") && len(marker) <= 3 {
			if _, ok := m.tokens[marker]; ok {
				return true
			}
			continue
		}
		if strings.Contains(m.lower, marker) {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// rule binds a predicate to an intent. Rules are evaluated in order and the
// first match wins, which makes the precedence explicit and testable.
type rule struct {
	intent domain.Intent
	match  func(m message) bool
}

// Classifier resolves the intent of a chat message via an ordered rule table.
type Classifier struct {
	rules []rule
}

// New creates a classifier with the default rule table.
func New() *Classifier {
	return &Classifier{
		rules: []rule{
			{domain.IntentComparison, func(m message) bool {
				return m.has(comparisonMarkers)
			}},
			{domain.IntentGeneralAdvice, func(m message) bool {
				return m.has(adviceMarkers) && !m.has(placeNameMarkers)
			}},
			{domain.IntentRecommendation, func(m message) bool {
				return m.has(recommendMarkers) || m.count > 0
			}},
		},
	}
}

// Classify maps raw text to a ClassifiedQuery. It never fails.
func (c *Classifier) Classify(text string) domain.ClassifiedQuery {
	m := parse(text)

	q := domain.ClassifiedQuery{
		Intent:         domain.IntentPlaceSearch,
		Keyword:        text,
		RequestedCount: m.count,
		RestaurantHint: m.has(foodMarkers),
	}

	for _, r := range c.rules {
		if r.match(m) {
			q.Intent = r.intent
			break
		}
	}

	if q.Intent == domain.IntentRecommendation && q.RequestedCount == 0 {
		q.RequestedCount = domain.DefaultRecommendationCount
	}
	if q.Intent == domain.IntentPlaceSearch {
		q.Keyword = searchKeyword(text)
	}

	return q
}

func parse(text string) message {
	lower := strings.ToLower(strings.TrimSpace(text))

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(lower) {
		tokens[strings.Trim(tok, ".,!?")] = struct{}{}
	}

	count := 0
	if sub := countPattern.FindStringSubmatch(lower); sub != nil {
		if n, err := strconv.Atoi(sub[1]); err == nil {
			count = n
		}
	}

	return message{lower: lower, tokens: tokens, count: count}
}

// searchKeyword strips stopwords from the text. When the cleaned keyword is
// shorter than 2 characters the original text is kept.
func searchKeyword(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := keywordStopwords[strings.Trim(f, ".,!?")]; ok {
			continue
		}
		kept = append(kept, f)
	}
	cleaned := strings.Join(kept, " ")
	if len([]rune(cleaned)) < 2 {
		return text
	}
	return cleaned
}
