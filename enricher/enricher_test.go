package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-intel-service/model"
)

func TestEnrichBatchDropsEmptyRecords(t *testing.T) {
	raw := []model.RawArticle{
		{},
		{Title: "AI policy shift", URL: "https://example.com/a"},
	}

	out := EnrichBatch("us", raw)
	require.Len(t, out, 1)
	assert.Equal(t, "https://example.com/a", out[0].URL)
}

func TestEnrichStableIdentifier(t *testing.T) {
	r := model.RawArticle{Title: "AI policy shift", URL: "https://example.com/a"}

	first := Enrich("US", r)
	second := Enrich("US", r)
	assert.Equal(t, first.ID, second.ID, "same (url, country) must yield the same id")
	assert.NotEmpty(t, first.ID)

	other := Enrich("DE", r)
	assert.Equal(t, first.ID[:len(first.ID)-2]+"DE", other.ID)
}

func TestEnrichKeepsCallerSuppliedID(t *testing.T) {
	r := model.RawArticle{ID: "caller-id", Title: "t", URL: "https://example.com/a"}
	assert.Equal(t, "caller-id", Enrich("US", r).ID)
}

func TestEnrichIdentifierFallsBackToTitle(t *testing.T) {
	a := Enrich("US", model.RawArticle{Title: "Only a title"})
	b := Enrich("US", model.RawArticle{Title: "Only a title"})
	assert.Equal(t, a.ID, b.ID)
}

func TestEnrichNormalization(t *testing.T) {
	out := EnrichBatch("gb", []model.RawArticle{
		{Title: "New ai regulation announced", URL: "https://example.com/x"},
	})
	require.Len(t, out, 1)
	a := out[0]

	assert.Equal(t, "GB", a.Country)
	assert.Equal(t, "Unknown", a.Source)
	assert.Equal(t, "en", a.Language)
	assert.Equal(t, "newsapi", a.Provenance)
	assert.Equal(t, "policy", a.TopicCategory)
	// category falls back to the derived topic when the feed has none
	assert.Equal(t, "policy", a.Category)
	assert.False(t, a.Breaking)

	require.NotNil(t, a.RelevanceScore)
	require.NotNil(t, a.AnalysisScore)
	require.NotNil(t, a.CompositeScore)
	assert.Equal(t, scoringComposite(*a.RelevanceScore, *a.AnalysisScore), *a.CompositeScore)
}

func TestEnrichKeepsExplicitCategory(t *testing.T) {
	a := Enrich("US", model.RawArticle{Title: "t", URL: "u", Category: "technology"})
	assert.Equal(t, "technology", a.Category)
}

func scoringComposite(rel, ana int) float64 {
	return float64(rel+ana) / 2.0
}
