package scoring

import "strings"

// Bundle is the full set of derived values for one article.
type Bundle struct {
	Relevance   int
	Analysis    int
	Composite   float64
	Topic       string
	Tags        []string
	Sentiment   float64
	Readability int
	WordCount   int
	Premium     bool
}

// Score grades one article. A blank title short-circuits every text-derived
// score to zero; topic category, readability and word count stay driven by
// whatever text is present.
func Score(title, description, content, source string) Bundle {
	b := Bundle{
		Topic:       TopicCategory(title, description),
		Tags:        Tags(title, description),
		Readability: Readability(content, description),
		WordCount:   WordCount(content, description),
		Premium:     IsPremiumSource(source),
	}

	if strings.TrimSpace(title) == "" {
		return b
	}

	b.Relevance = Relevance(title, description)
	b.Analysis = AnalysisDepth(title, description, source)
	b.Composite = Composite(b.Relevance, b.Analysis)
	b.Sentiment = Sentiment(title, description)
	return b
}
