package domain

// Intent is the classified purpose of an inbound chat message.
type Intent string

const (
	IntentComparison     Intent = "comparison"
	IntentGeneralAdvice  Intent = "general_advice"
	IntentRecommendation Intent = "recommendation"
	IntentPlaceSearch    Intent = "place_search"
)

// DefaultRecommendationCount is used when a recommendation request carries no
// explicit count.
const DefaultRecommendationCount = 10

// ClassifiedQuery is the immutable output of the classifier, created once per
// request.
type ClassifiedQuery struct {
	Intent         Intent
	Keyword        string
	RequestedCount int // 0 = not requested
	RestaurantHint bool
}

// SearchDomains returns the place domains the retriever should fan out to.
// The dining hint narrows the search to restaurants without changing intent.
func (q ClassifiedQuery) SearchDomains() []PlaceDomain {
	if q.RestaurantHint {
		return []PlaceDomain{DomainRestaurant}
	}
	return DomainPriority()
}

// SampleDomain returns the domain the random-recommendation branch draws from.
func (q ClassifiedQuery) SampleDomain() PlaceDomain {
	if q.RestaurantHint {
		return DomainRestaurant
	}
	return DomainAttraction
}
