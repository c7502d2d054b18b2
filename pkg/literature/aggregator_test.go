package literature

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name   string
	papers []Paper
	err    error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, query string, limit int) ([]Paper, error) {
	return f.papers, f.err
}

func TestAggregatorMergesAndDeduplicates(t *testing.T) {
	a := NewAggregator([]Provider{
		&fakeProvider{name: "crossref", papers: []Paper{
			{Title: "Maternal Health Access in Rural Kenya", Citations: 12, Year: 2023, Source: "crossref"},
			{Title: "Unrelated paper about geology", Citations: 3, Year: 2010, Source: "crossref"},
		}},
		&fakeProvider{name: "semantic_scholar", papers: []Paper{
			{Title: "Maternal health access in rural Kenya!", Citations: 40, Year: 2023, Source: "semantic_scholar"},
			{Title: "Facility distance and antenatal care", Citations: 8, Year: 2024, Source: "semantic_scholar"},
		}},
	}, 10, time.Second)

	results, failures, err := a.Search(context.Background(), "maternal health access rural Kenya")
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, results, 3)

	// The duplicate collapses to the record with more citations.
	var merged *ScoredPaper
	for i := range results {
		if NormalizeTitle(results[i].Title) == "maternal health access in rural kenya" {
			merged = &results[i]
		}
	}
	require.NotNil(t, merged)
	assert.Equal(t, 40, merged.Citations)

	// Topical match outranks the off-topic paper.
	assert.Equal(t, "maternal health access in rural kenya", NormalizeTitle(results[0].Title))
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Relevance, 0.0)
		assert.LessOrEqual(t, r.Relevance, 1.0)
	}
}

func TestAggregatorToleratesPartialFailure(t *testing.T) {
	a := NewAggregator([]Provider{
		&fakeProvider{name: "crossref", err: errors.New("status 503")},
		&fakeProvider{name: "semantic_scholar", papers: []Paper{
			{Title: "Vaccine hesitancy drivers", Year: 2022},
		}},
	}, 10, time.Second)

	results, failures, err := a.Search(context.Background(), "vaccine hesitancy")
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "crossref", failures[0].Provider)
	assert.Len(t, results, 1)
}

func TestAggregatorAllProvidersFail(t *testing.T) {
	a := NewAggregator([]Provider{
		&fakeProvider{name: "crossref", err: errors.New("timeout")},
		&fakeProvider{name: "semantic_scholar", err: errors.New("status 500")},
	}, 10, time.Second)

	_, failures, err := a.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Len(t, failures, 2)
}

func TestAggregatorTruncatesToLimit(t *testing.T) {
	papers := make([]Paper, 0, 15)
	for i := 0; i < 15; i++ {
		papers = append(papers, Paper{Title: "Paper number " + string(rune('a'+i)), Year: 2020})
	}
	a := NewAggregator([]Provider{&fakeProvider{name: "crossref", papers: papers}}, 5, time.Second)

	results, _, err := a.Search(context.Background(), "paper")
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestScoreBounds(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	exact := Score("maternal health access", Paper{
		Title: "Maternal health access", Year: 2025, Citations: 100000,
	}, now)
	assert.LessOrEqual(t, exact, 1.0)
	assert.Greater(t, exact, 0.5)

	miss := Score("maternal health access", Paper{Title: "Deep sea mining", Year: 2025}, now)
	assert.Equal(t, 0.0, miss)

	// Newer papers outrank older ones at equal topical fit.
	fresh := Score("maternal health", Paper{Title: "Maternal health", Year: 2025}, now)
	stale := Score("maternal health", Paper{Title: "Maternal health", Year: 1995}, now)
	assert.Greater(t, fresh, stale)
}

func TestNormalizeTitle(t *testing.T) {
	cases := map[string]string{
		"Maternal Health: Access & Outcomes!": "maternal health access outcomes",
		"  spaced   out  ":                    "spaced out",
		"":                                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTitle(in))
	}
}
