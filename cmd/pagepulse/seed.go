package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagepulse/pagepulse/domain/rules"
	"github.com/pagepulse/pagepulse/infrastructure/persistence"
	"github.com/pagepulse/pagepulse/internal/database"
)

func seedCmd() *cobra.Command {
	var (
		envFile   string
		rulesFile string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed moderation rules into the database",
		Long: `Seed moderation rules into the database.

Without --rules the built-in Vietnamese rule pack is loaded. With --rules,
patterns and keywords are read from a YAML file instead:

  spam_patterns:
    - type: keyword
      value: "mua ngay"
    - type: domain
      value: "bit.ly"
  toxic_keywords:
    - keyword: "..."
      category: hate_speech
      severity: 2.0
  sentiment_keywords:
    - keyword: "tuyệt vời"
      sentiment: positive
      weight: 2.0
      category: praise

Rule tables that already hold rows are left untouched so operator edits
survive reseeding.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), envFile, rulesFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Path to a YAML rule pack (default: built-in pack)")

	return cmd
}

func runSeed(ctx context.Context, envFile, rulesFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	pack := rules.DefaultPack()
	if rulesFile != "" {
		pack, err = persistence.LoadPack(rulesFile)
		if err != nil {
			return fmt.Errorf("load rule pack: %w", err)
		}
	}

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := persistence.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	spam, toxic, sentiment, err := persistence.NewSeeder(db).Seed(ctx, pack)
	if err != nil {
		return fmt.Errorf("seed rules: %w", err)
	}

	fmt.Printf("seeded %d rules (%d spam patterns, %d toxic keywords, %d sentiment keywords)\n",
		spam+toxic+sentiment, spam, toxic, sentiment)
	return nil
}
