// Package rules defines the editable rule tables that drive the spam,
// toxicity, and sentiment classifiers.
package rules

import (
	"context"
	"time"
)

// PatternType describes how a spam pattern value is interpreted.
type PatternType string

// PatternType values.
const (
	PatternKeyword PatternType = "keyword"
	PatternDomain  PatternType = "domain"
	PatternRegex   PatternType = "regex"
	PatternPhone   PatternType = "phone"
)

// SpamPattern is a single spam detection rule.
type SpamPattern struct {
	id          int64
	patternType PatternType
	value       string
	active      bool
	createdAt   time.Time
}

// NewSpamPattern creates an active SpamPattern.
func NewSpamPattern(patternType PatternType, value string) SpamPattern {
	return SpamPattern{
		patternType: patternType,
		value:       value,
		active:      true,
		createdAt:   time.Now().UTC(),
	}
}

// ReconstructSpamPattern rebuilds a SpamPattern from persisted state.
func ReconstructSpamPattern(id int64, patternType PatternType, value string, active bool, createdAt time.Time) SpamPattern {
	return SpamPattern{
		id:          id,
		patternType: patternType,
		value:       value,
		active:      active,
		createdAt:   createdAt,
	}
}

// ID returns the database identifier.
func (p SpamPattern) ID() int64 { return p.id }

// Type returns how the value is interpreted.
func (p SpamPattern) Type() PatternType { return p.patternType }

// Value returns the pattern text.
func (p SpamPattern) Value() string { return p.value }

// Active reports whether the pattern participates in classification.
func (p SpamPattern) Active() bool { return p.active }

// CreatedAt returns when the pattern was added.
func (p SpamPattern) CreatedAt() time.Time { return p.createdAt }

// ToxicKeyword is a single toxicity rule. Severity feeds the action ladder:
// matched severities are summed across the comment.
type ToxicKeyword struct {
	id       int64
	keyword  string
	category string
	severity float64
	active   bool
}

// NewToxicKeyword creates an active ToxicKeyword.
func NewToxicKeyword(keyword, category string, severity float64) ToxicKeyword {
	return ToxicKeyword{
		keyword:  keyword,
		category: category,
		severity: severity,
		active:   true,
	}
}

// ReconstructToxicKeyword rebuilds a ToxicKeyword from persisted state.
func ReconstructToxicKeyword(id int64, keyword, category string, severity float64, active bool) ToxicKeyword {
	return ToxicKeyword{
		id:       id,
		keyword:  keyword,
		category: category,
		severity: severity,
		active:   active,
	}
}

// ID returns the database identifier.
func (k ToxicKeyword) ID() int64 { return k.id }

// Keyword returns the matched text.
func (k ToxicKeyword) Keyword() string { return k.keyword }

// Category returns the toxicity category.
func (k ToxicKeyword) Category() string { return k.category }

// Severity returns the keyword's contribution to the severity sum.
func (k ToxicKeyword) Severity() float64 { return k.severity }

// Active reports whether the keyword participates in classification.
func (k ToxicKeyword) Active() bool { return k.active }

// SentimentLabel says which direction a sentiment keyword pulls.
type SentimentLabel string

// SentimentLabel values.
const (
	LabelPositive SentimentLabel = "positive"
	LabelNegative SentimentLabel = "negative"
	LabelNeutral  SentimentLabel = "neutral"
)

// SentimentKeyword is a single sentiment rule. The label carries the
// direction; weight is the keyword's magnitude and is always non-negative.
type SentimentKeyword struct {
	id        int64
	keyword   string
	sentiment SentimentLabel
	weight    float64
	category  string
	active    bool
}

// NewSentimentKeyword creates an active SentimentKeyword.
func NewSentimentKeyword(keyword string, sentiment SentimentLabel, weight float64, category string) SentimentKeyword {
	return SentimentKeyword{
		keyword:   keyword,
		sentiment: sentiment,
		weight:    weight,
		category:  category,
		active:    true,
	}
}

// ReconstructSentimentKeyword rebuilds a SentimentKeyword from persisted state.
func ReconstructSentimentKeyword(id int64, keyword string, sentiment SentimentLabel, weight float64, category string, active bool) SentimentKeyword {
	return SentimentKeyword{
		id:        id,
		keyword:   keyword,
		sentiment: sentiment,
		weight:    weight,
		category:  category,
		active:    active,
	}
}

// ID returns the database identifier.
func (k SentimentKeyword) ID() int64 { return k.id }

// Keyword returns the matched text.
func (k SentimentKeyword) Keyword() string { return k.keyword }

// Sentiment returns the keyword's direction.
func (k SentimentKeyword) Sentiment() SentimentLabel { return k.sentiment }

// Weight returns the keyword's magnitude.
func (k SentimentKeyword) Weight() float64 { return k.weight }

// Category returns the optional free-text grouping.
func (k SentimentKeyword) Category() string { return k.category }

// Active reports whether the keyword participates in classification.
func (k SentimentKeyword) Active() bool { return k.active }

// SpamPatternStore persists spam patterns.
type SpamPatternStore interface {
	Active(ctx context.Context) ([]SpamPattern, error)
	Save(ctx context.Context, pattern SpamPattern) (SpamPattern, error)
	SaveAll(ctx context.Context, patterns []SpamPattern) error
}

// ToxicKeywordStore persists toxicity keywords.
type ToxicKeywordStore interface {
	Active(ctx context.Context) ([]ToxicKeyword, error)
	Save(ctx context.Context, keyword ToxicKeyword) (ToxicKeyword, error)
	SaveAll(ctx context.Context, keywords []ToxicKeyword) error
}

// SentimentKeywordStore persists sentiment keywords.
type SentimentKeywordStore interface {
	Active(ctx context.Context) ([]SentimentKeyword, error)
	Save(ctx context.Context, keyword SentimentKeyword) (SentimentKeyword, error)
	SaveAll(ctx context.Context, keywords []SentimentKeyword) error
}
