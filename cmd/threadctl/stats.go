package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/threadkit/pkg/types"
	"github.com/joshuapare/threadkit/thread/walker"
)

var (
	statsThread   string
	statsDepth    int
	statsDepthSet bool
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().StringVar(&statsThread, "thread", "", "Stats for a stored thread")
	cmd.Flags().IntVar(&statsDepth, "depth", 0, "Depth cap to measure flattening against")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <thread.json>",
		Short: "Show thread statistics",
		Long: `The stats command walks a thread and reports node, root and orphan counts,
the structural depth, and how many replies a depth cap would flatten.

Example:
  threadctl stats thread.json
  threadctl stats thread.json --depth 3
  threadctl stats --thread 6f1c2b1e-0d7a-4c55-9a57-1c4f1e0b1f3a --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statsDepthSet = cmd.Flags().Changed("depth")
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	comments, label, err := loadComments(cfg, args, statsThread)
	if err != nil {
		return err
	}

	depth := cfg.MaxDepth
	if statsDepthSet {
		depth = statsDepth
	}

	stats, err := walker.NewCounter[types.Comment](depth).Count(comments)
	if err != nil {
		return fmt.Errorf("failed to walk thread: %w", err)
	}

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("\nThread Statistics: %s\n", label)
	printInfo("%s\n\n", strings.Repeat("=", 40))
	printInfo("Structure:\n")
	printInfo("  Comments: %d\n", stats.Nodes)
	printInfo("  Top-level: %d\n", stats.Roots)
	printInfo("  Orphans: %d\n", stats.Orphans)
	printInfo("  Max Depth: %d\n\n", stats.MaxDepth)
	printInfo("Rendering (max depth %s):\n", depthLabel(depth))
	printInfo("  Nested Levels: %d\n", stats.Levels)
	printInfo("  Flattened: %d\n", stats.Flattened)
	printInfo("  Deepest Rendered: %d\n", stats.MaxEffectiveDepth)
	return nil
}

func depthLabel(depth int) string {
	switch depth {
	case walker.Unlimited:
		return "unlimited"
	case walker.Flat:
		return "flat"
	}
	return fmt.Sprint(depth)
}
