package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/domain/rules"
)

// Sentiment scoring constants.
const (
	sentimentScoreDivisor = 10.0
	confidenceDivisor     = 20.0
	confidenceBase        = 0.5
	mixedConfidence       = 0.6
	neutralConfidence     = 0.5
	maxReportKeywords     = 5
)

// Sentiment classifies emotional tone by summing the weights of matched
// sentiment keywords per direction. The verdict comes from the difference
// between the positive and negative sums.
type Sentiment struct {
	keywords rules.SentimentKeywordStore
	logger   *slog.Logger
}

// NewSentiment creates a Sentiment analyzer.
func NewSentiment(keywords rules.SentimentKeywordStore, logger *slog.Logger) *Sentiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sentiment{keywords: keywords, logger: logger}
}

var _ comment.SentimentAnalyzer = (*Sentiment)(nil)

// Analyze classifies a comment's sentiment from its cleaned text.
func (s *Sentiment) Analyze(ctx context.Context, cleaned string) (comment.SentimentReport, error) {
	keywords, err := s.keywords.Active(ctx)
	if err != nil {
		return comment.SentimentReport{}, fmt.Errorf("load sentiment keywords: %w", err)
	}

	var (
		positive float64
		negative float64
		matched  []string
	)
	if len(keywords) > 0 && cleaned != "" {
		patterns := make([][]byte, len(keywords))
		for i, k := range keywords {
			patterns[i] = []byte(strings.ToLower(k.Keyword()))
		}
		matcher := ahocorasick.NewMatcher(patterns)

		hitSet := make(map[int]struct{})
		for _, idx := range matcher.Match([]byte(cleaned)) {
			hitSet[idx] = struct{}{}
		}
		for i, k := range keywords {
			if _, ok := hitSet[i]; !ok {
				continue
			}
			switch k.Sentiment() {
			case rules.LabelPositive:
				positive += k.Weight()
			case rules.LabelNegative:
				negative += k.Weight()
			}
			if len(matched) < maxReportKeywords {
				matched = append(matched, k.Keyword())
			}
		}
	}

	return buildReport(positive, negative, matched), nil
}

func buildReport(positive, negative float64, matched []string) comment.SentimentReport {
	total := positive - negative
	abs := math.Abs(total)
	score := round2(math.Copysign(math.Min(abs/sentimentScoreDivisor, 1), total))

	report := comment.SentimentReport{
		Score:         score,
		PositiveScore: positive,
		NegativeScore: negative,
		Total:         total,
		Keywords:      matched,
	}

	switch {
	case total > 1:
		report.Sentiment = comment.SentimentPositive
		report.Confidence = round2(math.Min(confidenceBase+abs/confidenceDivisor, 1))
	case total < -1:
		report.Sentiment = comment.SentimentNegative
		report.Confidence = round2(math.Min(confidenceBase+abs/confidenceDivisor, 1))
	case total != 0:
		report.Sentiment = comment.SentimentMixed
		report.Confidence = mixedConfidence
	default:
		report.Sentiment = comment.SentimentNeutral
		report.Score = 0
		report.Confidence = neutralConfidence
	}
	return report
}
