package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	repoimpl "github.com/hifzhub/murajaah/internal/adapter/repository"
	"github.com/hifzhub/murajaah/internal/entity"
	"github.com/hifzhub/murajaah/internal/infrastructure/config"
	"github.com/hifzhub/murajaah/internal/infrastructure/database"
	"github.com/hifzhub/murajaah/internal/usecase"
)

// planInitCmd seeds the review items of a memorization plan from a file of
// verse ranges, one "surah:ayah" or "surah:from-to" per line.
var planInitCmd = &cobra.Command{
	Use:   "plan-init",
	Short: "Seed review items for a memorization plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, _ := cmd.Flags().GetInt64("plan")
		studentID, _ := cmd.Flags().GetInt64("student")
		file, _ := cmd.Flags().GetString("file")
		startRaw, _ := cmd.Flags().GetString("start")

		start := time.Now()
		if startRaw != "" {
			parsed, err := time.Parse(time.RFC3339, startRaw)
			if err != nil {
				return fmt.Errorf("parse start: %w", err)
			}
			start = parsed
		}

		verses, err := readVerseRanges(file)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		pool, cleanup, err := database.NewConnection(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		plans := usecase.NewPlanUsecase(repoimpl.NewReviewItemRepository(pool))
		items, err := plans.InitializePlanItems(cmd.Context(), planID, studentID, verses, start)
		if err != nil {
			return fmt.Errorf("initialize plan items: %w", err)
		}

		fmt.Printf("seeded %d review items for plan %d\n", len(items), planID)
		return nil
	},
}

func readVerseRanges(path string) ([]entity.VerseRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ranges file: %w", err)
	}
	defer f.Close()

	var verses []entity.VerseRef
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs, err := entity.ParseVerseRange(line)
		if err != nil {
			return nil, fmt.Errorf("parse range %q: %w", line, err)
		}
		verses = append(verses, refs...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ranges file: %w", err)
	}
	return verses, nil
}

func init() {
	rootCmd.AddCommand(planInitCmd)

	planInitCmd.Flags().Int64("plan", 0, "plan id")
	planInitCmd.Flags().Int64("student", 0, "student id")
	planInitCmd.Flags().String("file", "", "path to a file of verse ranges")
	planInitCmd.Flags().String("start", "", "plan start (RFC 3339, default: now)")
	_ = planInitCmd.MarkFlagRequired("plan")
	_ = planInitCmd.MarkFlagRequired("student")
	_ = planInitCmd.MarkFlagRequired("file")
}
