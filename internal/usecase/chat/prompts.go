package chat

import (
	"fmt"
	"strings"

	"github.com/ktravel-lab/tripchat/internal/domain"
)

// maxDescriptionRunes bounds the record description included in a prompt.
const maxDescriptionRunes = 300

// promptKey selects a template by (intent, domain of the fused result).
// Domain is empty for intents that carry no retrieval result.
type promptKey struct {
	intent domain.Intent
	dom    domain.PlaceDomain
}

// promptInput carries the slot values for one prompt.
type promptInput struct {
	query   domain.ClassifiedQuery
	best    *domain.SearchCandidate
	sampled []domain.SearchCandidate
}

type promptFunc func(in promptInput) string

// promptTable is the closed dispatch table. validatePromptTable checks at
// construction time that every reachable (intent, domain) pair has an entry,
// so adding a branch without a template fails fast instead of at request time.
var promptTable = map[promptKey]promptFunc{
	{domain.IntentComparison, ""}: func(in promptInput) string {
		return fmt.Sprintf(
			"You are a Korea travel expert. Compare the options in this question "+
				"and give a clear recommendation with reasons: %q. "+
				"Answer in the language of the question.",
			in.query.Keyword)
	},

	{domain.IntentGeneralAdvice, ""}: func(in promptInput) string {
		return fmt.Sprintf(
			"You are a Korea travel expert. Give practical cultural advice for "+
				"this question: %q. Keep it concrete and concise. "+
				"Answer in the language of the question.",
			in.query.Keyword)
	},

	{domain.IntentGeneralAdvice, domain.DomainRestaurant}: func(in promptInput) string {
		return fmt.Sprintf(
			"You are a Korea dining expert. Give practical advice about food and "+
				"restaurant culture for this question: %q. "+
				"Answer in the language of the question.",
			in.query.Keyword)
	},

	{domain.IntentRecommendation, domain.DomainAttraction}: func(in promptInput) string {
		return fmt.Sprintf(
			"You are a Korea travel expert. Briefly introduce each of these "+
				"attractions in one or two sentences, in order:\n%s\n"+
				"Answer in the language of the question: %q.",
			titleList(in.sampled), in.query.Keyword)
	},

	{domain.IntentRecommendation, domain.DomainRestaurant}: func(in promptInput) string {
		return fmt.Sprintf(
			"You are a Korea dining expert. Briefly introduce each of these "+
				"restaurants in one or two sentences, in order:\n%s\n"+
				"Answer in the language of the question: %q.",
			titleList(in.sampled), in.query.Keyword)
	},

	{domain.IntentPlaceSearch, domain.DomainFestival}: func(in promptInput) string {
		p := in.best.Payload
		return fmt.Sprintf(
			"You are a Korea travel expert. Using only the record below, answer "+
				"the question %q.\n"+
				"Festival: %s\nDates: %s - %s\nAddress: %s\nDescription: %s\n"+
				"Answer in the language of the question.",
			in.query.Keyword, p.Title, p.StartDate, p.EndDate, p.Address,
			truncate(p.Description, maxDescriptionRunes))
	},

	{domain.IntentPlaceSearch, domain.DomainAttraction}: func(in promptInput) string {
		p := in.best.Payload
		return fmt.Sprintf(
			"You are a Korea travel expert. Using only the record below, answer "+
				"the question %q.\n"+
				"Attraction: %s\nAddress: %s\nHours: %s\nPhone: %s\nDescription: %s\n"+
				"Answer in the language of the question.",
			in.query.Keyword, p.Title, p.Address, p.Hours, p.Phone,
			truncate(p.Description, maxDescriptionRunes))
	},

	{domain.IntentPlaceSearch, domain.DomainRestaurant}: func(in promptInput) string {
		p := in.best.Payload
		return fmt.Sprintf(
			"You are a Korea dining expert. Using only the record below, answer "+
				"the question %q.\n"+
				"Restaurant: %s\nAddress: %s\nHours: %s\nPhone: %s\nDescription: %s\n"+
				"Answer in the language of the question.",
			in.query.Keyword, p.Title, p.Address, p.Hours, p.Phone,
			truncate(p.Description, maxDescriptionRunes))
	},
}

// reachableKeys enumerates every (intent, domain) pair the pipeline can
// produce.
func reachableKeys() []promptKey {
	return []promptKey{
		{domain.IntentComparison, ""},
		{domain.IntentGeneralAdvice, ""},
		{domain.IntentGeneralAdvice, domain.DomainRestaurant},
		{domain.IntentRecommendation, domain.DomainAttraction},
		{domain.IntentRecommendation, domain.DomainRestaurant},
		{domain.IntentPlaceSearch, domain.DomainFestival},
		{domain.IntentPlaceSearch, domain.DomainAttraction},
		{domain.IntentPlaceSearch, domain.DomainRestaurant},
	}
}

// validatePromptTable ensures the table covers every reachable key.
func validatePromptTable() error {
	for _, key := range reachableKeys() {
		if _, ok := promptTable[key]; !ok {
			return fmt.Errorf("missing prompt template for intent=%s domain=%s", key.intent, key.dom)
		}
		if _, ok := genParams[key.intent]; !ok {
			return fmt.Errorf("missing generation params for intent=%s", key.intent)
		}
	}
	return nil
}

// buildPrompt resolves the template for the request and fills its slots.
func buildPrompt(q domain.ClassifiedQuery, best *domain.SearchCandidate, sampled []domain.SearchCandidate) string {
	key := promptKey{intent: q.Intent, dom: ""}
	switch q.Intent {
	case domain.IntentGeneralAdvice:
		if q.RestaurantHint {
			key.dom = domain.DomainRestaurant
		}
	case domain.IntentRecommendation:
		key.dom = q.SampleDomain()
	case domain.IntentPlaceSearch:
		if best != nil {
			key.dom = best.Domain
		}
	}

	fn, ok := promptTable[key]
	if !ok {
		// Unreachable when validatePromptTable passed; keep a safe fallback.
		fn = promptTable[promptKey{domain.IntentGeneralAdvice, ""}]
	}
	return fn(promptInput{query: q, best: best, sampled: sampled})
}

func titleList(cs []domain.SearchCandidate) string {
	var b strings.Builder
	for i, c := range cs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Title)
	}
	return b.String()
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}
