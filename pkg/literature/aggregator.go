package literature

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ProviderFailure records one provider that errored during an aggregate
// search. Callers log these; they only become fatal when every provider
// fails.
type ProviderFailure struct {
	Provider string
	Err      error
}

func (f ProviderFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Provider, f.Err)
}

// Aggregator fans a query out to all providers, deduplicates by normalized
// title, and ranks the merged set.
type Aggregator struct {
	providers []Provider
	perQuery  int
	timeout   time.Duration
}

func NewAggregator(providers []Provider, perQuery int, timeout time.Duration) *Aggregator {
	if perQuery <= 0 {
		perQuery = 10
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Aggregator{providers: providers, perQuery: perQuery, timeout: timeout}
}

// Search queries every provider concurrently. Failures are returned alongside
// the merged results; the error is non-nil only when no provider produced
// anything usable.
func (a *Aggregator) Search(ctx context.Context, query string) ([]ScoredPaper, []ProviderFailure, error) {
	type outcome struct {
		provider string
		papers   []Paper
		err      error
	}

	results := make([]outcome, len(a.providers))
	var wg sync.WaitGroup
	for i, p := range a.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			papers, err := p.Search(callCtx, query, a.perQuery)
			results[i] = outcome{provider: p.Name(), papers: papers, err: err}
		}(i, p)
	}
	wg.Wait()

	var failures []ProviderFailure
	var merged []Paper
	seen := make(map[string]int) // normalized title -> index into merged
	for _, res := range results {
		if res.err != nil {
			failures = append(failures, ProviderFailure{Provider: res.provider, Err: res.err})
			continue
		}
		for _, paper := range res.papers {
			key := NormalizeTitle(paper.Title)
			if key == "" {
				continue
			}
			if idx, dup := seen[key]; dup {
				// Keep the richer record for the same paper.
				if paper.Citations > merged[idx].Citations {
					merged[idx] = paper
				}
				continue
			}
			seen[key] = len(merged)
			merged = append(merged, paper)
		}
	}

	if len(merged) == 0 && len(failures) == len(a.providers) && len(a.providers) > 0 {
		return nil, failures, fmt.Errorf("all literature providers failed: %w", failures[0].Err)
	}

	ranked := Rank(query, merged, time.Now())
	if len(ranked) > a.perQuery {
		ranked = ranked[:a.perQuery]
	}
	return ranked, failures, nil
}
