package chat

import "github.com/ktravel-lab/tripchat/internal/domain"

// genParams holds the fixed generation settings per intent: shorter and more
// deterministic for comparison and advice, longer for place answers.
var genParams = map[domain.Intent]domain.GenParams{
	domain.IntentComparison:     {MaxTokens: 300, Temperature: 0.3},
	domain.IntentGeneralAdvice:  {MaxTokens: 350, Temperature: 0.4},
	domain.IntentRecommendation: {MaxTokens: 400, Temperature: 0.7},
	domain.IntentPlaceSearch:    {MaxTokens: 500, Temperature: 0.7},
}
