package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"draftforge/internal/store"
	"draftforge/internal/style"
)

var (
	styleChannelID  string
	styleSamplesDir string
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Manage a channel's style fingerprint",
}

var styleLearnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Analyze sample texts and fold them into the channel's profile",
	Long: `Learn reads every .md and .txt file in the samples directory, computes a
style fingerprint from them, and merges it with the channel's stored profile.
Merging is weighted by sample count, so a large existing corpus is not washed
out by a handful of new samples.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := loadSamples(styleSamplesDir)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return fmt.Errorf("no sample texts found in %s", styleSamplesDir)
		}

		cs, err := store.NewSQLiteStore(cfg.Storage.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer cs.Close()

		repo := style.NewRepository(cs)
		fresh := style.Analyze(samples)

		merged := fresh
		if existing, found, err := repo.Load(cmd.Context(), styleChannelID); err != nil {
			return err
		} else if found {
			merged = style.Merge([]style.Profile{existing, fresh})
		}

		if err := repo.Save(cmd.Context(), styleChannelID, merged); err != nil {
			return err
		}

		logger.Info("style profile updated",
			zap.String("channel", styleChannelID),
			zap.Int("new_samples", len(samples)),
			zap.Int("total_samples", merged.SampleCount))
		fmt.Println(style.Format(merged, style.ModeVerbose))
		return nil
	},
}

var styleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the channel's stored style profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := store.NewSQLiteStore(cfg.Storage.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer cs.Close()

		profile, found, err := style.NewRepository(cs).Load(cmd.Context(), styleChannelID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("channel %s has no style profile", styleChannelID)
		}

		fmt.Println(style.Format(profile, style.ModeVerbose))
		fmt.Println(style.Format(profile, style.ModeCompact))
		return nil
	},
}

func init() {
	styleCmd.PersistentFlags().StringVar(&styleChannelID, "channel-id", "", "channel identifier (required)")
	_ = styleCmd.MarkPersistentFlagRequired("channel-id")
	styleLearnCmd.Flags().StringVar(&styleSamplesDir, "samples", "", "directory of sample texts (required)")
	_ = styleLearnCmd.MarkFlagRequired("samples")

	styleCmd.AddCommand(styleLearnCmd)
	styleCmd.AddCommand(styleShowCmd)
}

func loadSamples(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}

	var samples []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".md" && ext != ".txt" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		if text := strings.TrimSpace(string(raw)); text != "" {
			samples = append(samples, text)
		}
	}
	return samples, nil
}
