// Package normalize rewrites search keywords for retrieval: deterministic
// normalization plus a small set of expanded variants to improve recall.
package normalize

import (
	"strings"

	"go.uber.org/zap"
)

// maxVariants caps the variant set produced for one request.
const maxVariants = 4

// aliases maps abbreviated or colloquial landmark names to their canonical
// indexed names. Applied by substring replacement. A canonical form never
// contains its own alias, which keeps normalization idempotent.
var aliases = [][2]string{
	{"ddp", "dongdaemun design plaza"},
	{"경복궁", "gyeongbokgung palace"},
	{"창덕궁", "changdeokgung palace"},
	{"남산타워", "namsan seoul tower"},
	{"홍대", "hongdae"},
	{"에버랜드", "everland"},
}

// glossary maps Korean travel terms to the English terms the collections are
// indexed under.
var glossary = [][2]string{
	{"축제", "festival"},
	{"궁전", "palace"},
	{"박물관", "museum"},
	{"맛집", "restaurant"},
	{"해변", "beach"},
	{"시장", "market"},
}

// localeQualifiers mark that a keyword is already geographically anchored.
var localeQualifiers = []string{"seoul", "korea", "busan", "jeju", "서울", "한국", "부산", "제주"}

// stopwords removed during normalization.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "in": {}, "at": {}, "of": {}, "to": {},
	"for": {}, "about": {}, "near": {}, "please": {},
}

// Normalizer performs deterministic keyword rewriting.
type Normalizer struct {
	logger *zap.Logger
}

// New creates a normalizer.
func New(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize lower-cases the keyword, strips stopwords, and applies the alias
// table. Idempotent: Normalize(Normalize(q)) == Normalize(q).
func (n *Normalizer) Normalize(q string) string {
	s := strings.ToLower(strings.TrimSpace(q))

	fields := strings.Fields(s)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := stopwords[f]; ok {
			continue
		}
		kept = append(kept, f)
	}
	s = strings.Join(kept, " ")

	for _, pair := range aliases {
		if strings.Contains(s, pair[0]) {
			s = strings.ReplaceAll(s, pair[0], pair[1])
			n.logger.Debug("alias substitution",
				zap.String("alias", pair[0]),
				zap.String("canonical", pair[1]),
			)
		}
	}

	return s
}

// Variants returns the deduplicated, order-preserving union of the original
// keyword, its normalized form, and expanded rewrites: a locale qualifier
// for short unanchored keywords and one bilingual glossary substitution.
func (n *Normalizer) Variants(q string) []string {
	norm := n.Normalize(q)

	candidates := []string{q, norm}

	if len([]rune(norm)) > 0 && len([]rune(norm)) <= 12 && !hasLocaleQualifier(norm) {
		candidates = append(candidates, norm+" seoul")
	}

	for _, pair := range glossary {
		if strings.Contains(norm, pair[0]) {
			candidates = append(candidates, strings.ReplaceAll(norm, pair[0], pair[1]))
			break
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		variants = append(variants, c)
		if len(variants) == maxVariants {
			break
		}
	}

	return variants
}

func hasLocaleQualifier(s string) bool {
	for _, q := range localeQualifiers {
		if strings.Contains(s, q) {
			return true
		}
	}
	return false
}
