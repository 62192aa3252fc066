package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"draftforge/internal/patterns"
	"draftforge/internal/store"
)

var (
	patternsChannelID string
	patternsAll       bool
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List a channel's learned patterns",
	Long: `Patterns lists the phrases the review loop has learned to avoid for a
channel. By default only patterns seen within the activity window are shown;
--all includes dormant ones, which are retained but not applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := store.NewSQLiteStore(cfg.Storage.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer cs.Close()

		all, err := patterns.NewRepository(cs).Load(cmd.Context(), patternsChannelID)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Printf("channel %s has no learned patterns\n", patternsChannelID)
			return nil
		}

		now := time.Now()
		cutoff := now.Add(-patterns.ActiveWindow)
		shown := 0
		for _, p := range all {
			active := !p.LastSeenAt.Before(cutoff)
			if !active && !patternsAll {
				continue
			}
			state := "active"
			if !active {
				state = "dormant"
			}
			fmt.Printf("%-8s %-10s conf=%.2f seen=%d last=%s  %s\n",
				state, p.Category, p.Confidence, p.Occurrences,
				p.LastSeenAt.Format("2006-01-02"), p.Phrase)
			shown++
		}
		fmt.Printf("%d of %d patterns shown\n", shown, len(all))
		return nil
	},
}

func init() {
	patternsCmd.Flags().StringVar(&patternsChannelID, "channel-id", "", "channel identifier (required)")
	patternsCmd.Flags().BoolVar(&patternsAll, "all", false, "include dormant patterns")
	_ = patternsCmd.MarkFlagRequired("channel-id")
}
