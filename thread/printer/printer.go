package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/threadkit/pkg/types"
	"github.com/joshuapare/threadkit/thread/walker"
)

const (
	DefaultIndentSize   = 2
	DefaultMaxDepth     = 5
	DefaultExcerptRunes = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs one indented line per comment.
	FormatText Format = "text"

	// FormatJSON outputs a flat JSON array in walk order, with effective depths.
	FormatJSON Format = "json"

	// FormatTree outputs nested JSON following the effective (capped) nesting.
	FormatTree Format = "tree"
)

// Style selects the line prefix of the text format.
type Style string

const (
	// StylePlain prints no prefix beyond indentation.
	StylePlain Style = "plain"

	// StyleNumbered prefixes outline numbers such as "1." and "1.2.".
	StyleNumbered Style = "numbered"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, tree).
	// Default: FormatText
	Format Format

	// Style selects plain or numbered lines (text format only).
	// Default: StylePlain
	Style Style

	// IndentSize is the number of spaces per depth level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth caps nesting (0 = unlimited, -1 = flat).
	// Replies below the cap are shown at the deepest permitted level.
	// Default: 5
	MaxDepth int

	// ShortPing prints pingbacks and trackbacks as a single short line.
	// Default: false
	ShortPing bool

	// ShowDates appends the comment date.
	// Default: false
	ShowDates bool

	// ShowModeration marks comments that are not approved yet.
	// Default: true
	ShowModeration bool

	// ExcerptRunes limits how much content is shown per comment (text format only).
	// Set to 0 for no limit.
	// Default: 0
	ExcerptRunes int

	// Color styles authors and markers (text format only). It has no effect
	// unless the writer is a terminal.
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:         FormatText,
		Style:          StylePlain,
		IndentSize:     DefaultIndentSize,
		MaxDepth:       DefaultMaxDepth,
		ShortPing:      false,
		ShowDates:      false,
		ShowModeration: true,
		ExcerptRunes:   DefaultExcerptRunes,
		Color:          false,
	}
}

// Printer handles formatted output of comment threads.
type Printer struct {
	opts   Options
	writer io.Writer
	styles textStyles
}

// New creates a new Printer.
//
// Example:
//
//	opts := printer.DefaultOptions()
//	opts.MaxDepth = 3
//	p := printer.New(os.Stdout, opts)
//	p.PrintThread(comments)
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		writer: w,
		opts:   opts,
	}
}

// renderState is the walk context shared by all formats.
type renderState struct {
	numbers []int          // outline counters, one per open level
	records []*jsonComment // flat records or tree roots
	open    []*jsonComment // tree nodes whose element has not ended
}

// PrintThread prints comments in caller order, nested by parent up to
// MaxDepth. comments is not modified.
func (p *Printer) PrintThread(comments []*types.Comment) error {
	w := walker.New[types.Comment, *types.Comment, *renderState](p.opts.MaxDepth, nil)
	state := &renderState{numbers: []int{0}}

	switch p.opts.Format {
	case FormatJSON:
		w.Render = p.collectJSON
	case FormatTree:
		w.Render = p.collectTree
		w.Hooks.EndElement = func(_ *types.Comment, _ int, s *renderState) error {
			s.open = s.open[:len(s.open)-1]
			return nil
		}
	case FormatText:
		p.styles = newTextStyles(p.writer, p.opts.Color)
		w.Render = p.printCommentText
		w.Hooks.StartLevel = startOutlineLevel
		w.Hooks.EndLevel = endOutlineLevel
	default:
		return fmt.Errorf("unknown format %q", p.opts.Format)
	}

	if err := w.Walk(comments, state); err != nil {
		return fmt.Errorf("print thread: %w", err)
	}

	switch p.opts.Format {
	case FormatJSON, FormatTree:
		return p.writeJSON(state.records)
	default:
		return nil
	}
}
