package service

import (
	"context"
	"log/slog"

	"github.com/pagepulse/pagepulse/domain/rules"
)

// PackSeeder loads a rule pack into empty rule tables.
type PackSeeder interface {
	// Seed inserts the pack's rules into each table that is still empty and
	// returns the inserted counts per table.
	Seed(ctx context.Context, pack rules.Pack) (spam, toxic, sentiment int, err error)
}

// SeedResult reports how many rules a seeding run inserted per table.
type SeedResult struct {
	SpamPatterns      int
	ToxicKeywords     int
	SentimentKeywords int
}

// Total returns the number of rules inserted across all tables.
func (r SeedResult) Total() int {
	return r.SpamPatterns + r.ToxicKeywords + r.SentimentKeywords
}

// Rules manages the editable rule tables behind the classifiers.
type Rules struct {
	seeder     PackSeeder
	spam       rules.SpamPatternStore
	toxic      rules.ToxicKeywordStore
	sentiments rules.SentimentKeywordStore
	logger     *slog.Logger
}

// NewRules creates a Rules service.
func NewRules(
	seeder PackSeeder,
	spam rules.SpamPatternStore,
	toxic rules.ToxicKeywordStore,
	sentiments rules.SentimentKeywordStore,
	logger *slog.Logger,
) *Rules {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rules{
		seeder:     seeder,
		spam:       spam,
		toxic:      toxic,
		sentiments: sentiments,
		logger:     logger,
	}
}

// Seed loads a rule pack into the rule tables. Tables that already hold rules
// are left untouched, so seeding is safe to repeat. An empty pack falls back
// to the built-in default.
func (r *Rules) Seed(ctx context.Context, pack rules.Pack) (SeedResult, error) {
	if pack.IsEmpty() {
		pack = rules.DefaultPack()
	}

	spam, toxic, sentiment, err := r.seeder.Seed(ctx, pack)
	if err != nil {
		return SeedResult{}, err
	}

	result := SeedResult{
		SpamPatterns:      spam,
		ToxicKeywords:     toxic,
		SentimentKeywords: sentiment,
	}
	r.logger.Info("seeded rule tables",
		"spam_patterns", result.SpamPatterns,
		"toxic_keywords", result.ToxicKeywords,
		"sentiment_keywords", result.SentimentKeywords,
	)
	return result, nil
}

// ActiveSpamPatterns lists the spam patterns currently in force.
func (r *Rules) ActiveSpamPatterns(ctx context.Context) ([]rules.SpamPattern, error) {
	return r.spam.Active(ctx)
}

// ActiveToxicKeywords lists the toxicity keywords currently in force.
func (r *Rules) ActiveToxicKeywords(ctx context.Context) ([]rules.ToxicKeyword, error) {
	return r.toxic.Active(ctx)
}

// ActiveSentimentKeywords lists the sentiment keywords currently in force.
func (r *Rules) ActiveSentimentKeywords(ctx context.Context) ([]rules.SentimentKeyword, error) {
	return r.sentiments.Active(ctx)
}
