package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/threadkit/internal/config"
	"github.com/joshuapare/threadkit/internal/filter"
	"github.com/joshuapare/threadkit/internal/logger"
	"github.com/joshuapare/threadkit/pkg/types"
	"github.com/joshuapare/threadkit/thread/printer"
	"github.com/joshuapare/threadkit/thread/walker"
)

var (
	renderThread    string
	renderWhere     string
	renderDepth     int
	renderDepthSet  bool
	renderFormat    string
	renderStyle     string
	renderShortPing bool
	renderDates     bool
	renderExcerpt   int
	renderValidate  bool
)

func init() {
	cmd := newRenderCmd()
	cmd.Flags().StringVar(&renderThread, "thread", "", "Render a stored thread by id")
	cmd.Flags().StringVar(&renderWhere, "where", "",
		"Only render comments matching this expression (replies to filtered-out comments are kept only with --depth 0 or -1)")
	cmd.Flags().IntVar(&renderDepth, "depth", printer.DefaultMaxDepth, "Maximum depth (0 = unlimited, -1 = flat)")
	cmd.Flags().StringVar(&renderFormat, "format", "", "Output format: text, json, tree")
	cmd.Flags().StringVar(&renderStyle, "style", "", "Text style: plain, numbered")
	cmd.Flags().BoolVar(&renderShortPing, "short-ping", false, "Show pingbacks and trackbacks as one short line")
	cmd.Flags().BoolVar(&renderDates, "dates", false, "Show comment dates")
	cmd.Flags().IntVar(&renderExcerpt, "excerpt", 0, "Truncate content to this many characters")
	cmd.Flags().BoolVar(&renderValidate, "validate", false, "Refuse threads with duplicate ids or parent cycles")
	rootCmd.AddCommand(cmd)
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <thread.json>",
		Short: "Render a thread with a maximum nesting depth",
		Long: `The render command prints a comment thread. Replies deeper than --depth are
shown at the deepest permitted level, right after their parent.

Example:
  threadctl render thread.json --depth 3
  threadctl render thread.json --style numbered --short-ping
  threadctl render thread.json --where 'approved = true' --depth 0 --format tree
  threadctl render --thread 6f1c2b1e-0d7a-4c55-9a57-1c4f1e0b1f3a

Replies whose parent is removed by --where are only shown with --depth 0
(unlimited) or --depth -1 (flat). Under a positive depth they are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderDepthSet = cmd.Flags().Changed("depth")
			return runRender(args)
		},
	}
	return cmd
}

// renderOptions merges config file settings with render flags.
func renderOptions(cfg *config.Config) printer.Options {
	opts := cfg.PrinterOptions()
	if renderDepthSet {
		opts.MaxDepth = renderDepth
	}
	if renderFormat != "" {
		opts.Format = printer.Format(renderFormat)
	} else if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if renderStyle != "" {
		opts.Style = printer.Style(renderStyle)
	}
	if renderShortPing {
		opts.ShortPing = true
	}
	if renderDates {
		opts.ShowDates = true
	}
	if renderExcerpt > 0 {
		opts.ExcerptRunes = renderExcerpt
	}
	opts.Color = !noColor
	return opts
}

// applyFilter applies --where, or the config's where when the flag is unset.
func applyFilter(cfg *config.Config, comments []*types.Comment) ([]*types.Comment, error) {
	where := cfg.Where
	if renderWhere != "" {
		where = renderWhere
	}
	if where == "" {
		return comments, nil
	}

	f, err := filter.Compile(where)
	if err != nil {
		return nil, err
	}
	kept := f.Apply(comments)
	printVerbose("Filter %q kept %d of %d comments\n", f, len(kept), len(comments))
	return kept, nil
}

func runRender(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	comments, label, err := loadComments(cfg, args, renderThread)
	if err != nil {
		return err
	}

	if renderValidate {
		roots, idx := walker.BuildIndex(comments)
		if err := walker.Validate(roots, idx).Err(); err != nil {
			return fmt.Errorf("thread %s failed validation: %w", label, err)
		}
	}

	comments, err = applyFilter(cfg, comments)
	if err != nil {
		return err
	}

	opts := renderOptions(cfg)
	logger.Debug("rendering thread", "thread", label, "comments", len(comments),
		"max_depth", opts.MaxDepth, "format", opts.Format)

	if err := printer.New(os.Stdout, opts).PrintThread(comments); err != nil {
		return fmt.Errorf("failed to render thread: %w", err)
	}
	return nil
}
