package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"draftforge/internal/config"
	"draftforge/internal/generator"
	"draftforge/internal/llm"
	"draftforge/internal/patterns"
	"draftforge/internal/pipeline"
	"draftforge/internal/review"
	"draftforge/internal/store"
	"draftforge/internal/style"
	"draftforge/internal/types"
)

var (
	runChannelPath string
	runSourcesPath string
	runOutDir      string
	runEmitHTML    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline for one channel",
	Long: `Run generates a draft from the given source material, reviews it with the
agent panel, and revises until the quality gate passes or the revision budget
runs out. The accepted (or best-effort) draft is written to the output
directory as Markdown, optionally with an HTML rendering alongside it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVar(&runChannelPath, "channel", "", "channel definition file (required)")
	runCmd.Flags().StringVar(&runSourcesPath, "sources", "", "source material: a YAML list or a directory of text files (required)")
	runCmd.Flags().StringVar(&runOutDir, "out", "out", "output directory for the final draft")
	runCmd.Flags().BoolVar(&runEmitHTML, "html", false, "also write an HTML rendering of the draft")
	_ = runCmd.MarkFlagRequired("channel")
	_ = runCmd.MarkFlagRequired("sources")
}

func runPipeline(ctx context.Context) error {
	channel, err := loadChannelFlag()
	if err != nil {
		return err
	}

	sources, err := loadSources(runSourcesPath)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no source material found at %s", runSourcesPath)
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return err
	}

	cs, err := store.NewSQLiteStore(cfg.Storage.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer cs.Close()

	styleProfile := ""
	profile, found, err := style.NewRepository(cs).Load(ctx, channel.ID)
	if err != nil {
		return err
	}
	if found {
		styleProfile = style.Format(profile, style.ModeVerbose)
	} else {
		logger.Warn("no style profile for channel; run 'draftforge style learn' to add one",
			zap.String("channel", channel.ID))
	}

	panel := review.NewPanel(review.DefaultAgents(client), logger)
	ctrl := pipeline.New(
		*channel,
		generator.New(client, logger),
		panel,
		client,
		patterns.NewRepository(cs),
		store.NewHistoryStore(cs),
		logger,
	)

	runID := uuid.NewString()
	logger.Info("starting run",
		zap.String("run_id", runID),
		zap.String("channel", channel.ID),
		zap.Int("sources", len(sources)))

	result, err := ctrl.Run(ctx, pipeline.RunInput{
		Sources:      sources,
		StyleProfile: styleProfile,
	})
	if err != nil {
		return fmt.Errorf("run %s: %w", runID, err)
	}

	if err := writeDraft(runID, channel.ID, result); err != nil {
		return err
	}

	printSummary(runID, result)
	return nil
}

func loadChannelFlag() (*config.ChannelConfig, error) {
	channel, err := config.LoadChannel(runChannelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel: %w", err)
	}
	return channel, nil
}

// loadSources accepts either a YAML file containing a list of sources or a
// directory of text/markdown files, one source per file.
func loadSources(path string) ([]types.SourceMaterial, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources: %w", err)
	}

	if !info.IsDir() {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sources: %w", err)
		}
		var sources []types.SourceMaterial
		if err := yaml.Unmarshal(raw, &sources); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return sources, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources: %w", err)
	}

	var sources []types.SourceMaterial
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".md" && ext != ".txt" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		sources = append(sources, types.SourceMaterial{
			Title: strings.TrimSuffix(e.Name(), ext),
			Body:  string(raw),
		})
	}
	return sources, nil
}

func writeDraft(runID, channelID string, result types.PipelineResult) error {
	if result.FinalDraft == nil {
		return fmt.Errorf("run %s produced no draft", runID)
	}

	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	markdown := fmt.Sprintf("# %s\n\n%s\n", result.FinalDraft.Headline, result.FinalDraft.Body)
	base := filepath.Join(runOutDir, fmt.Sprintf("%s-%s", channelID, runID))

	if err := os.WriteFile(base+".md", []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}

	if runEmitHTML {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
		if err := os.WriteFile(base+".html", buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write HTML: %w", err)
		}
	}

	return nil
}

func printSummary(runID string, result types.PipelineResult) {
	status := "PASSED"
	if !result.Passed {
		status = "BEST EFFORT (gate not passed)"
	}
	fmt.Printf("Run %s: %s\n", runID, status)
	fmt.Printf("  Revisions: %d\n", result.RevisionCount)
	fmt.Printf("  Cost: %d in / %d out tokens, $%.4f\n",
		result.TotalCost.InputTokens, result.TotalCost.OutputTokens, result.TotalCost.Dollars)
	for dim, score := range result.QualityScores {
		fmt.Printf("  %s: %d\n", dim, score)
	}
	if len(result.BelowThreshold) > 0 {
		fmt.Printf("  Below threshold: %s\n", strings.Join(result.BelowThreshold, ", "))
	}
}
