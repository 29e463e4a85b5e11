package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagepulse/pagepulse/domain/rules"
)

type fakeSeeder struct {
	pack rules.Pack
	err  error
}

func (f *fakeSeeder) Seed(_ context.Context, pack rules.Pack) (int, int, int, error) {
	if f.err != nil {
		return 0, 0, 0, f.err
	}
	f.pack = pack
	return len(pack.SpamPatterns), len(pack.ToxicKeywords), len(pack.SentimentKeywords), nil
}

func TestRules_SeedEmptyPackFallsBackToDefault(t *testing.T) {
	seeder := &fakeSeeder{}
	svc := NewRules(seeder, nil, nil, nil, nil)

	result, err := svc.Seed(context.Background(), rules.Pack{})
	require.NoError(t, err)

	assert.False(t, seeder.pack.IsEmpty(), "an empty pack seeds the built-in rules")
	assert.Positive(t, result.SpamPatterns)
	assert.Positive(t, result.ToxicKeywords)
	assert.Positive(t, result.SentimentKeywords)
	assert.Equal(t, result.SpamPatterns+result.ToxicKeywords+result.SentimentKeywords, result.Total())
}

func TestRules_SeedCustomPack(t *testing.T) {
	seeder := &fakeSeeder{}
	svc := NewRules(seeder, nil, nil, nil, nil)

	pack := rules.Pack{
		SpamPatterns: []rules.SpamPatternSpec{{Type: "keyword", Value: "mua ngay"}},
	}
	result, err := svc.Seed(context.Background(), pack)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SpamPatterns)
	assert.Zero(t, result.ToxicKeywords)
	assert.Len(t, seeder.pack.SpamPatterns, 1)
}

func TestRules_SeedErrorPropagates(t *testing.T) {
	seeder := &fakeSeeder{err: errors.New("db down")}
	svc := NewRules(seeder, nil, nil, nil, nil)

	_, err := svc.Seed(context.Background(), rules.DefaultPack())
	require.Error(t, err)
}
