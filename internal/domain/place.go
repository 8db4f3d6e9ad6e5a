package domain

// PlaceDomain identifies one of the independently indexed record collections.
type PlaceDomain string

const (
	DomainFestival   PlaceDomain = "festival"
	DomainAttraction PlaceDomain = "attraction"
	DomainRestaurant PlaceDomain = "restaurant"
)

// DomainPriority returns all domains in tie-break priority order.
func DomainPriority() []PlaceDomain {
	return []PlaceDomain{DomainFestival, DomainAttraction, DomainRestaurant}
}

// Score fusion constants: combined = 0.8*vector + 0.2*overlap, and a domain
// contributes a result only when its best combined score strictly exceeds
// the threshold.
const (
	vectorWeight    = 0.8
	overlapWeight   = 0.2
	FusionThreshold = 0.5
)

// CombinedScore fuses a vector similarity score with a keyword overlap score.
// Both inputs and the output lie in [0,1].
func CombinedScore(vectorScore, keywordOverlap float64) float64 {
	return vectorWeight*vectorScore + overlapWeight*keywordOverlap
}

// Payload carries the domain-specific fields of an indexed record.
type Payload struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Hours       string  `json:"hours,omitempty"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

// Match is a raw nearest-neighbor hit before score fusion.
type Match struct {
	ID      string
	Score   float64
	Payload Payload
}

// SearchCandidate is a scored record produced per (variant, domain) retrieval
// call. It lives only for the duration of one request.
type SearchCandidate struct {
	Domain         PlaceDomain `json:"domain"`
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	VectorScore    float64     `json:"vector_score"`
	KeywordOverlap float64     `json:"keyword_overlap"`
	CombinedScore  float64     `json:"combined_score"`
	Payload        Payload     `json:"payload"`
}

// NewCandidate builds a candidate and computes its combined score.
func NewCandidate(dom PlaceDomain, id string, vectorScore, keywordOverlap float64, p Payload) SearchCandidate {
	return SearchCandidate{
		Domain:         dom,
		ID:             id,
		Title:          p.Title,
		VectorScore:    vectorScore,
		KeywordOverlap: keywordOverlap,
		CombinedScore:  CombinedScore(vectorScore, keywordOverlap),
		Payload:        p,
	}
}

// Qualifies reports whether the candidate clears the fusion threshold.
// A score of exactly FusionThreshold does not qualify.
func (c SearchCandidate) Qualifies() bool {
	return c.CombinedScore > FusionThreshold
}

// RetrievalOutcome is the result of a multi-domain search: the per-domain
// qualifying bests (at most one per domain) and the single overall best.
type RetrievalOutcome struct {
	Best     *SearchCandidate
	ByDomain map[PlaceDomain]SearchCandidate
}

// Candidates returns the qualifying per-domain results in priority order.
func (o RetrievalOutcome) Candidates() []SearchCandidate {
	out := make([]SearchCandidate, 0, len(o.ByDomain))
	for _, d := range DomainPriority() {
		if c, ok := o.ByDomain[d]; ok {
			out = append(out, c)
		}
	}
	return out
}
