package comment

import "context"

// Sentiment classifies the emotional tone of a comment.
type Sentiment string

// Sentiment values.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// SentimentReport is the outcome of sentiment classification.
// PositiveScore and NegativeScore are the raw keyword weight sums per
// direction; Total is PositiveScore minus NegativeScore.
type SentimentReport struct {
	Sentiment     Sentiment
	Score         float64
	Confidence    float64
	PositiveScore float64
	NegativeScore float64
	Total         float64
	Keywords      []string
}

// SentimentAnalyzer classifies a comment's sentiment. Keywords match against
// the cleaned form of the text.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, cleaned string) (SentimentReport, error)
}
