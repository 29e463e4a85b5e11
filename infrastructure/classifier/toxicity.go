package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/domain/rules"
)

// toxicScoreDivisor normalizes the summed severity into a [0, 1] score.
const toxicScoreDivisor = 10.0

// Toxicity detects toxic content by multi-pattern matching the stored
// keyword table against the cleaned comment. Severities of every matched
// keyword are summed; the sum drives the recommended action.
type Toxicity struct {
	keywords rules.ToxicKeywordStore
	logger   *slog.Logger
}

// NewToxicity creates a Toxicity detector.
func NewToxicity(keywords rules.ToxicKeywordStore, logger *slog.Logger) *Toxicity {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toxicity{keywords: keywords, logger: logger}
}

var _ moderation.ToxicityDetector = (*Toxicity)(nil)

// Detect classifies a cleaned comment for toxicity.
func (t *Toxicity) Detect(ctx context.Context, cleaned string) (moderation.ToxicityReport, error) {
	keywords, err := t.keywords.Active(ctx)
	if err != nil {
		return moderation.ToxicityReport{}, fmt.Errorf("load toxic keywords: %w", err)
	}
	if len(keywords) == 0 || cleaned == "" {
		return moderation.ToxicityReport{Recommended: moderation.ActionNone}, nil
	}

	patterns := make([][]byte, len(keywords))
	for i, k := range keywords {
		patterns[i] = []byte(strings.ToLower(k.Keyword()))
	}
	matcher := ahocorasick.NewMatcher(patterns)

	hitSet := make(map[int]struct{})
	for _, idx := range matcher.Match([]byte(cleaned)) {
		hitSet[idx] = struct{}{}
	}
	if len(hitSet) == 0 {
		return moderation.ToxicityReport{Recommended: moderation.ActionNone}, nil
	}

	// Accumulate in table order so the reported category is deterministic:
	// the first matched keyword's category wins.
	var (
		sum      float64
		maxSev   float64
		category string
		matched  []string
	)
	for i, k := range keywords {
		if _, ok := hitSet[i]; !ok {
			continue
		}
		sum += k.Severity()
		if k.Severity() > maxSev {
			maxSev = k.Severity()
		}
		if category == "" {
			category = k.Category()
		}
		matched = append(matched, k.Keyword())
	}

	return moderation.ToxicityReport{
		Toxic:       true,
		Score:       round2(math.Min(sum/toxicScoreDivisor, 1)),
		MaxSeverity: maxSev,
		Category:    category,
		Keywords:    matched,
		Recommended: moderation.ActionForSeverity(maxSev),
	}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
