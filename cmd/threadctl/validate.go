package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/threadkit/pkg/types"
	"github.com/joshuapare/threadkit/thread/walker"
)

var validateThread string

func init() {
	cmd := newValidateCmd()
	cmd.Flags().StringVar(&validateThread, "thread", "", "Validate a stored thread")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <thread.json>",
		Short: "Check a thread for duplicate ids and parent cycles",
		Long: `The validate command checks thread structure without rendering it.
Duplicate ids and parent cycles are errors. Orphaned replies, whose parent
is not in the thread, are reported but allowed.

Example:
  threadctl validate thread.json
  threadctl validate --thread 6f1c2b1e-0d7a-4c55-9a57-1c4f1e0b1f3a --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
}

type validateResult struct {
	Thread     string     `json:"thread"`
	Valid      bool       `json:"valid"`
	Nodes      int        `json:"nodes"`
	Reachable  int        `json:"reachable"`
	Duplicates []types.ID `json:"duplicates,omitempty"`
	Cycles     []types.ID `json:"cycles,omitempty"`
	Orphans    []types.ID `json:"orphans,omitempty"`
}

func runValidate(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	comments, label, err := loadComments(cfg, args, validateThread)
	if err != nil {
		return err
	}

	roots, idx := walker.BuildIndex(comments)
	report := walker.Validate(roots, idx)

	if jsonOut {
		if err := printJSON(validateResult{
			Thread:     label,
			Valid:      report.OK(),
			Nodes:      report.Nodes,
			Reachable:  report.Reachable,
			Duplicates: report.Duplicates,
			Cycles:     report.Cycles,
			Orphans:    report.Orphans,
		}); err != nil {
			return err
		}
	} else {
		printInfo("Thread: %s\n", label)
		printInfo("  Comments: %d (%d reachable from top level)\n", report.Nodes, report.Reachable)
		if len(report.Orphans) > 0 {
			printInfo("  Missing parents: %v\n", report.Orphans)
		}
		if report.OK() {
			printInfo("OK\n")
		}
	}

	if err := report.Err(); err != nil {
		return fmt.Errorf("thread %s is invalid: %w", label, err)
	}
	return nil
}
