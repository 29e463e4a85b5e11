package persistence

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/pagepulse/pagepulse/domain/rules"
	"github.com/pagepulse/pagepulse/internal/database"
)

// LoadPack reads a YAML rule pack from disk.
func LoadPack(path string) (rules.Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rules.Pack{}, fmt.Errorf("read rule pack: %w", err)
	}

	var pack rules.Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return rules.Pack{}, fmt.Errorf("parse rule pack: %w", err)
	}
	return pack, nil
}

// Seeder populates empty rule tables from a rule pack. Tables that already
// hold rows are left alone so operator edits survive restarts.
type Seeder struct {
	db database.Database
}

// NewSeeder creates a Seeder.
func NewSeeder(db database.Database) Seeder {
	return Seeder{db: db}
}

// Seed inserts the pack's rules into every rule table that is still empty.
// The whole seed runs in one transaction, so a failure leaves no partial
// pack behind. It reports how many rows were inserted per table.
func (s Seeder) Seed(ctx context.Context, pack rules.Pack) (spam, toxic, sentiment int, err error) {
	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var n int64

		if err := tx.Model(&SpamPatternModel{}).Count(&n).Error; err != nil {
			return fmt.Errorf("count spam patterns: %w", err)
		}
		if n == 0 {
			patterns := pack.SpamPatternValues()
			if len(patterns) > 0 {
				models := make([]SpamPatternModel, len(patterns))
				for i, p := range patterns {
					models[i] = SpamPatternMapper{}.ToModel(p)
				}
				if err := tx.Create(&models).Error; err != nil {
					return fmt.Errorf("seed spam patterns: %w", err)
				}
			}
			spam = len(patterns)
		}

		if err := tx.Model(&ToxicKeywordModel{}).Count(&n).Error; err != nil {
			return fmt.Errorf("count toxic keywords: %w", err)
		}
		if n == 0 {
			keywords := pack.ToxicKeywordValues()
			if len(keywords) > 0 {
				models := make([]ToxicKeywordModel, len(keywords))
				for i, k := range keywords {
					models[i] = ToxicKeywordMapper{}.ToModel(k)
				}
				if err := tx.Create(&models).Error; err != nil {
					return fmt.Errorf("seed toxic keywords: %w", err)
				}
			}
			toxic = len(keywords)
		}

		if err := tx.Model(&SentimentKeywordModel{}).Count(&n).Error; err != nil {
			return fmt.Errorf("count sentiment keywords: %w", err)
		}
		if n == 0 {
			keywords := pack.SentimentKeywordValues()
			if len(keywords) > 0 {
				models := make([]SentimentKeywordModel, len(keywords))
				for i, k := range keywords {
					models[i] = SentimentKeywordMapper{}.ToModel(k)
				}
				if err := tx.Create(&models).Error; err != nil {
					return fmt.Errorf("seed sentiment keywords: %w", err)
				}
			}
			sentiment = len(keywords)
		}

		return nil
	})
	if err != nil {
		return 0, 0, 0, err
	}
	return spam, toxic, sentiment, nil
}
