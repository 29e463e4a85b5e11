// Package classifier implements the rule-driven spam, toxicity, and
// sentiment classifiers on top of the editable rule tables.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/domain/rules"
)

// Heuristic thresholds for pattern-free spam detection.
const (
	uppercaseRatioLimit = 0.7
	uppercaseMinLength  = 10
	repeatedRunLimit    = 6
	minMessageRunes     = 3
)

// Spam detects spam using the stored pattern table plus structural
// heuristics. Pattern rules are fetched per call so edits take effect
// without a restart.
type Spam struct {
	patterns rules.SpamPatternStore
	logger   *slog.Logger
}

// NewSpam creates a Spam detector.
func NewSpam(patterns rules.SpamPatternStore, logger *slog.Logger) *Spam {
	if logger == nil {
		logger = slog.Default()
	}
	return &Spam{patterns: patterns, logger: logger}
}

var _ moderation.SpamDetector = (*Spam)(nil)

// Detect classifies a comment from its raw text. It returns an error when
// the rule table cannot be loaded or contains a malformed regex; callers
// decide whether to fail open.
func (s *Spam) Detect(ctx context.Context, original string) (moderation.SpamReport, error) {
	patterns, err := s.patterns.Active(ctx)
	if err != nil {
		return moderation.SpamReport{}, fmt.Errorf("load spam patterns: %w", err)
	}

	lowered := strings.ToLower(original)
	var matched []string

	for _, p := range patterns {
		hit, err := matchPattern(p, original, lowered)
		if err != nil {
			return moderation.SpamReport{}, err
		}
		if hit {
			matched = append(matched, describePattern(p))
		}
	}

	if reason, hit := heuristicHit(original); hit {
		matched = append(matched, reason)
	}

	return moderation.SpamReport{Spam: len(matched) > 0, Patterns: matched}, nil
}

func matchPattern(p rules.SpamPattern, original, lowered string) (bool, error) {
	switch p.Type() {
	case rules.PatternKeyword, rules.PatternDomain:
		// Match the raw lowercased text: cleaning strips the dots and
		// digits that domain and keyword rules often depend on.
		return strings.Contains(lowered, strings.ToLower(p.Value())), nil
	case rules.PatternPhone:
		if p.Value() == "" {
			return false, nil
		}
		re, err := regexp.Compile(p.Value())
		if err != nil {
			return false, fmt.Errorf("compile spam pattern %q: %w", p.Value(), err)
		}
		return re.MatchString(original), nil
	case rules.PatternRegex:
		re, err := regexp.Compile(p.Value())
		if err != nil {
			return false, fmt.Errorf("compile spam pattern %q: %w", p.Value(), err)
		}
		return re.MatchString(lowered), nil
	default:
		return false, nil
	}
}

func describePattern(p rules.SpamPattern) string {
	if p.Type() == rules.PatternPhone {
		return "phone number"
	}
	return string(p.Type()) + ":" + p.Value()
}

// heuristicHit applies the structural spam checks that need no rule table.
func heuristicHit(original string) (string, bool) {
	trimmed := strings.TrimSpace(original)
	runes := []rune(trimmed)

	if len(runes) < minMessageRunes {
		return "too short", true
	}

	if len(runes) > uppercaseMinLength && uppercaseRatio(runes) > uppercaseRatioLimit {
		return "excessive uppercase", true
	}

	// Runs of the same rune. RE2 has no backreferences, so count by hand.
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= repeatedRunLimit {
				return "repeated characters", true
			}
		} else {
			run = 1
		}
	}

	return "", false
}

// uppercaseRatio is the share of uppercase runes in the whole message,
// spaces and digits included.
func uppercaseRatio(runes []rune) float64 {
	if len(runes) == 0 {
		return 0
	}
	var upper int
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(len(runes))
}
