package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/threadkit/pkg/types"
)

const (
	dateLayout         = "2006-01-02 15:04"
	ellipsis           = "…"
	awaitingModeration = "(awaiting moderation)"
)

// printCommentText prints one comment as a single indented line.
func (p *Printer) printCommentText(c *types.Comment, depth int, s *renderState) error {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	var b strings.Builder
	b.WriteString(indent)

	if p.opts.Style == StyleNumbered {
		s.numbers[len(s.numbers)-1]++
		b.WriteString(outlineNumber(s.numbers))
		b.WriteByte(' ')
	}

	// Format: "Pingback: example.org" when ShortPing is on
	if p.opts.ShortPing && c.Kind().IsPing() {
		kind := cases.Title(language.English).String(string(c.Kind()))
		fmt.Fprintf(&b, "%s: %s", p.styles.meta(kind), p.styles.author(normalize(c.Author)))
	} else {
		// Format: "author: content"
		fmt.Fprintf(&b, "%s: %s", p.styles.author(normalize(c.Author)), p.excerpt(c.Content))
	}

	if p.opts.ShowDates && !c.Date.IsZero() {
		b.WriteString(" " + p.styles.meta("["+c.Date.Format(dateLayout)+"]"))
	}
	if p.opts.ShowModeration && !c.Approved {
		b.WriteString(" " + p.styles.warn(awaitingModeration))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(p.writer, b.String())
	return err
}

// textStyles colors parts of a text line. The zero value prints plain text.
type textStyles struct {
	enabled     bool
	authorStyle lipgloss.Style
	metaStyle   lipgloss.Style
	warnStyle   lipgloss.Style
}

// newTextStyles builds styles for w. Color is dropped automatically when w is
// not a terminal.
func newTextStyles(w io.Writer, enabled bool) textStyles {
	if !enabled || w == nil {
		return textStyles{}
	}
	r := lipgloss.NewRenderer(w)
	return textStyles{
		enabled:     true,
		authorStyle: r.NewStyle().Bold(true),
		metaStyle:   r.NewStyle().Faint(true),
		warnStyle:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func (st textStyles) author(s string) string { return st.render(st.authorStyle, s) }
func (st textStyles) meta(s string) string   { return st.render(st.metaStyle, s) }
func (st textStyles) warn(s string) string   { return st.render(st.warnStyle, s) }

func (st textStyles) render(style lipgloss.Style, s string) string {
	if !st.enabled || s == "" {
		return s
	}
	return style.Render(s)
}

// excerpt normalizes content to a single NFC line, truncated to ExcerptRunes.
func (p *Printer) excerpt(content string) string {
	text := strings.Join(strings.Fields(normalize(content)), " ")
	if p.opts.ExcerptRunes <= 0 || utf8.RuneCountInString(text) <= p.opts.ExcerptRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:p.opts.ExcerptRunes]), " ") + ellipsis
}

// normalize returns s in Unicode NFC form, so composed and decomposed input
// print and truncate the same way.
func normalize(s string) string {
	return norm.NFC.String(s)
}

// outlineNumber formats counters as "1." or "1.2.3.".
func outlineNumber(numbers []int) string {
	var b strings.Builder
	for _, n := range numbers {
		b.WriteString(strconv.Itoa(n))
		b.WriteByte('.')
	}
	return b.String()
}

func startOutlineLevel(_ int, s *renderState) error {
	s.numbers = append(s.numbers, 0)
	return nil
}

func endOutlineLevel(_ int, s *renderState) error {
	s.numbers = s.numbers[:len(s.numbers)-1]
	return nil
}
