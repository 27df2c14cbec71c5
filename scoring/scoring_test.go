package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreBlankTitleShortCircuits(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		b := Score(title, "new policy on ai regulation", "some content", "Reuters")
		assert.Equal(t, 0, b.Relevance, "title=%q", title)
		assert.Equal(t, 0, b.Analysis, "title=%q", title)
		assert.Equal(t, 0.0, b.Composite, "title=%q", title)
		assert.Equal(t, 0.0, b.Sentiment, "title=%q", title)
		// topic classification still runs over the description
		assert.Equal(t, "policy", b.Topic, "title=%q", title)
	}
}

func TestRelevancePremiumPhrases(t *testing.T) {
	one := Relevance("quantum computing advances", "")
	two := Relevance("quantum computing meets neural network advances", "")

	assert.Equal(t, 45, one) // base 5 + one premium phrase
	assert.Greater(t, two, one, "each extra premium phrase must add score")
	assert.Equal(t, 85, two)
}

func TestRelevanceTechGiantsOnlyCountWithAIMatch(t *testing.T) {
	// "google" alone: no AI keyword, so the tech-giant bonus does not apply.
	withoutAI := Relevance("Google opens new office", "")
	assert.Equal(t, 5, withoutAI)

	// With "chatgpt" matched the giant bonus kicks in: 5 + 30 + 25.
	withAI := Relevance("Google ships chatgpt rival", "")
	assert.Equal(t, 60, withAI)
}

func TestRelevanceCanGoNegative(t *testing.T) {
	score := Relevance("Best deal on headphones", "")
	// base 5, "deal" -60, "headphones" -60
	assert.Equal(t, -115, score)
}

func TestRelevanceClampedAt100(t *testing.T) {
	score := Relevance("ai research breakthrough on machine learning innovation", "")
	assert.Equal(t, 100, score)
}

func TestAnalysisDepth(t *testing.T) {
	score := AnalysisDepth("OpenAI report", "", "Reuters")
	// base 20 + "openai" 25 + "report" 15 + premium source 20
	assert.Equal(t, 80, score)

	// Premium source bonus applies once even if multiple names match.
	once := AnalysisDepth("plain title", "", "bbc wired reuters")
	assert.Equal(t, 40, once)
}

func TestAnalysisDepthLongDescription(t *testing.T) {
	long := strings.Repeat("x", 151)
	assert.Equal(t, 35, AnalysisDepth("plain title", long, ""))
	assert.Equal(t, 20, AnalysisDepth("plain title", strings.Repeat("x", 150), ""))
}

func TestComposite(t *testing.T) {
	assert.Equal(t, 70.0, Composite(80, 60))
	assert.Equal(t, 67.5, Composite(75, 60))
}

func TestTopicCategoryPriority(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"new security policy announced", "policy"}, // policy wins over security
		{"research study published", "research"},
		{"startup raises investment", "business"},
		{"national defense systems", "security"},
		{"ethics board convened", "ethics"},
		{"nothing matches here", "general"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TopicCategory(tt.text, ""), "text=%q", tt.text)
	}
}

func TestTagsAreNonExclusive(t *testing.T) {
	tags := Tags("policy research investment security ethics", "")
	assert.Equal(t, []string{"policy", "research", "investment", "security", "ethics"}, tags)

	assert.Empty(t, Tags("nothing here", ""))
}

func TestSentiment(t *testing.T) {
	assert.Equal(t, 0.6, Sentiment("growth success boost", ""))
	assert.Equal(t, 0.2, Sentiment("growth ahead", ""))
	assert.Equal(t, -0.2, Sentiment("ban looms", ""))
	assert.Equal(t, 0.0, Sentiment("growth concern", ""))
	// all five positives clamp the ratio at exactly 1.0
	assert.Equal(t, 1.0, Sentiment("growth success breakthrough improve boost", ""))
}

func TestReadabilityBands(t *testing.T) {
	assert.Equal(t, 70, Readability(strings.Repeat("a", 1501), ""))
	assert.Equal(t, 60, Readability(strings.Repeat("a", 801), ""))
	assert.Equal(t, 55, Readability(strings.Repeat("a", 401), ""))
	assert.Equal(t, 50, Readability("short", ""))
	assert.Equal(t, 50, Readability("", ""))
	// falls back to the description when content is blank
	assert.Equal(t, 55, Readability("", strings.Repeat("a", 401)))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 3, WordCount("one two three", ""))
	assert.Equal(t, 2, WordCount("", "fallback text"))
	assert.Equal(t, 0, WordCount("", ""))
	assert.Equal(t, 0, WordCount("   ", " "))
}

func TestIsPremiumSource(t *testing.T) {
	assert.True(t, IsPremiumSource("TechCrunch"))
	assert.True(t, IsPremiumSource("WIRED Magazine"))
	assert.True(t, IsPremiumSource("The Wall Street Journal"))
	assert.False(t, IsPremiumSource("Unknown"))
	assert.False(t, IsPremiumSource(""))
}
