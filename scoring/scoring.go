// Package scoring holds the keyword heuristics that grade raw articles.
// Everything here is a pure function over the article text: matching is
// plain substring containment on the lower-cased "title + space +
// description" string, so results are bit-reproducible for identical input.
package scoring

import (
	"math"
	"strings"
)

var (
	premiumAIPhrases = []string{
		"artificial intelligence breakthrough", "ai research", "machine learning innovation",
		"ai government", "ai policy", "ai regulation", "ai national security",
		"quantum computing", "neural network", "deep learning",
	}
	aiKeywords           = []string{"artificial intelligence", "ai ", "machine learning", "chatgpt", "openai", "algorithm"}
	techGiantKeywords    = []string{"google", "amazon", "aws", "microsoft", "apple", "meta", "nvidia"}
	intelligenceKeywords = []string{"research", "breakthrough", "innovation", "policy", "regulation", "security"}
	businessKeywords     = []string{"startup funding", "ai investment", "venture capital", "billion", "valuation"}
	consumerKeywords     = []string{
		"deal", "sale", "discount", "buy", "price", "review", "specs", "off right now",
		"camera", "speaker", "headphones", "ebike", "gadget", "$", "clip-on",
	}
	entertainmentKeywords = []string{"troll", "trailer", "movie", "netflix", "game"}

	depthPremiumKeywords = []string{"quantum", "algorithm", "breakthrough", "outperforms", "supercomputer", "outage", "aws", "openai", "chatgpt"}
	depthKeywords        = []string{"analysis", "report", "study", "research", "data", "market", "industry", "experts", "warning"}
	techContextKeywords  = []string{"browser", "rival", "google", "technology", "cloud", "complexity", "scale"}
	depthPremiumSources  = []string{"ars", "wired", "bbc", "techcrunch", "reuters"}

	positiveWords = []string{"growth", "success", "breakthrough", "improve", "boost"}
	negativeWords = []string{"concern", "risk", "decline", "warning", "ban"}

	premiumSources = []string{
		"techcrunch", "wired", "reuters", "bloomberg", "financial times",
		"wall street journal", "mit technology review",
	}
)

func matchText(title, description string) string {
	return strings.ToLower(title + " " + description)
}

// Relevance scores how on-topic an article is for AI coverage. The result
// is clamped to 100 at the top only; consumer and entertainment penalties
// can push it below zero.
func Relevance(title, description string) int {
	if strings.TrimSpace(title) == "" {
		return 0
	}
	text := matchText(title, description)
	score := 5

	for _, kw := range premiumAIPhrases {
		if strings.Contains(text, kw) {
			score += 40
		}
	}

	aiMatch := false
	for _, kw := range aiKeywords {
		if strings.Contains(text, kw) {
			score += 30
			aiMatch = true
		}
	}

	if aiMatch {
		for _, kw := range techGiantKeywords {
			if strings.Contains(text, kw) {
				score += 25
			}
		}
	}

	for _, kw := range intelligenceKeywords {
		if strings.Contains(text, kw) {
			score += 20
		}
	}
	for _, kw := range businessKeywords {
		if strings.Contains(text, kw) {
			score += 15
		}
	}
	for _, kw := range consumerKeywords {
		if strings.Contains(text, kw) {
			score -= 60
		}
	}
	for _, kw := range entertainmentKeywords {
		if strings.Contains(text, kw) {
			score -= 50
		}
	}

	return min(score, 100)
}

// AnalysisDepth scores how substantive an article looks. All additions are
// non-negative on a base of 20, clamped to 100.
func AnalysisDepth(title, description, source string) int {
	if strings.TrimSpace(title) == "" {
		return 0
	}
	text := matchText(title, description)
	score := 20

	for _, kw := range depthPremiumKeywords {
		if strings.Contains(text, kw) {
			score += 25
		}
	}
	for _, kw := range depthKeywords {
		if strings.Contains(text, kw) {
			score += 15
		}
	}
	for _, kw := range techContextKeywords {
		if strings.Contains(text, kw) {
			score += 10
		}
	}

	if len(description) > 150 {
		score += 15
	}

	if source != "" {
		sourceLower := strings.ToLower(source)
		for _, s := range depthPremiumSources {
			if strings.Contains(sourceLower, s) {
				score += 20
				break
			}
		}
	}

	return min(score, 100)
}

// Composite is the average of relevance and analysis, two decimals.
func Composite(relevance, analysis int) float64 {
	return round2(float64(relevance+analysis) / 2.0)
}

// TopicCategory picks the first matching category in fixed priority order.
func TopicCategory(title, description string) string {
	text := matchText(title, description)
	switch {
	case strings.Contains(text, "policy") || strings.Contains(text, "regulation"):
		return "policy"
	case strings.Contains(text, "research") || strings.Contains(text, "study"):
		return "research"
	case strings.Contains(text, "startup") || strings.Contains(text, "investment"):
		return "business"
	case strings.Contains(text, "security") || strings.Contains(text, "defense"):
		return "security"
	case strings.Contains(text, "ethics"):
		return "ethics"
	default:
		return "general"
	}
}

// Tags collects every matching keyword family, unlike TopicCategory which
// stops at the first.
func Tags(title, description string) []string {
	text := matchText(title, description)
	var tags []string
	if strings.Contains(text, "policy") || strings.Contains(text, "regulation") {
		tags = append(tags, "policy")
	}
	if strings.Contains(text, "research") || strings.Contains(text, "study") {
		tags = append(tags, "research")
	}
	if strings.Contains(text, "investment") || strings.Contains(text, "funding") {
		tags = append(tags, "investment")
	}
	if strings.Contains(text, "security") || strings.Contains(text, "defense") {
		tags = append(tags, "security")
	}
	if strings.Contains(text, "ethics") {
		tags = append(tags, "ethics")
	}
	return tags
}

// Sentiment counts positive minus negative keyword hits, scaled by 5 and
// clamped to [-1, 1].
func Sentiment(title, description string) float64 {
	text := matchText(title, description)
	score := 0
	for _, w := range positiveWords {
		if strings.Contains(text, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, w) {
			score--
		}
	}
	return round2(math.Max(-1, math.Min(1, float64(score)/5.0)))
}

// Readability bands the article by text length, preferring content over
// description.
func Readability(content, description string) int {
	text := content
	if strings.TrimSpace(text) == "" {
		text = description
	}
	length := len(text)
	switch {
	case length > 1500:
		return 70
	case length > 800:
		return 60
	case length > 400:
		return 55
	default:
		return 50
	}
}

// WordCount splits content (falling back to description) on whitespace.
func WordCount(content, description string) int {
	text := content
	if strings.TrimSpace(text) == "" {
		text = description
	}
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// IsPremiumSource reports whether the source display name matches the
// premium allow-list.
func IsPremiumSource(source string) bool {
	if source == "" {
		return false
	}
	sourceLower := strings.ToLower(source)
	for _, s := range premiumSources {
		if strings.Contains(sourceLower, s) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
