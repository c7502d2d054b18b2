package literature

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Score combines lexical similarity to the query with recency and citation
// weight, normalized to [0,1]. Recency multiplies by up to 2x for fresh
// papers; citations contribute sub-linearly so a citation giant cannot
// overwhelm topical fit.
func Score(query string, p Paper, now time.Time) float64 {
	sim := similarity(query, p.Title+" "+p.Abstract)

	recency := 1.0
	if p.Year > 0 {
		yearsOld := math.Max(1, float64(now.Year()-p.Year))
		recency = math.Min(2, 1+5/yearsOld)
	}

	citation := 1 + 0.1*math.Pow(float64(p.Citations), 0.3)

	raw := sim * recency * citation
	return math.Min(1, raw/4)
}

// Rank scores papers against the query and orders them best-first. The
// returned slice aliases the input.
func Rank(query string, papers []Paper, now time.Time) []ScoredPaper {
	scored := make([]ScoredPaper, 0, len(papers))
	for _, p := range papers {
		scored = append(scored, ScoredPaper{Paper: p, Relevance: Score(query, p, now)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Relevance > scored[j].Relevance
	})
	return scored
}

// ScoredPaper is a paper with its computed relevance.
type ScoredPaper struct {
	Paper
	Relevance float64
}

// similarity is the fraction of query tokens found in the document text.
func similarity(query, doc string) float64 {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return 0
	}
	docTokens := make(map[string]struct{})
	for _, t := range tokenize(doc) {
		docTokens[t] = struct{}{}
	}
	hits := 0
	seen := make(map[string]struct{})
	for _, t := range queryTokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := docTokens[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(seen))
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "how": {}, "what": {},
	"does": {}, "with": {}, "that": {}, "from": {}, "this": {}, "has": {},
	"have": {}, "which": {}, "between": {}, "their": {}, "its": {},
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
