package printer

import (
	"encoding/json"
	"time"

	"github.com/joshuapare/threadkit/pkg/types"
)

// jsonComment represents a comment in JSON format.
type jsonComment struct {
	ID        types.ID          `json:"id"`
	Parent    types.ID          `json:"parent"`
	Depth     int               `json:"depth"`
	Author    string            `json:"author"`
	AuthorURL string            `json:"author_url,omitempty"`
	Type      types.CommentType `json:"type"`
	Approved  bool              `json:"approved"`
	Date      string            `json:"date,omitempty"`
	Content   string            `json:"content"`
	Children  []*jsonComment    `json:"children,omitempty"`
}

func (p *Printer) newRecord(c *types.Comment, depth int) *jsonComment {
	rec := &jsonComment{
		ID:        c.ID,
		Parent:    c.Parent,
		Depth:     depth,
		Author:    normalize(c.Author),
		AuthorURL: c.AuthorURL,
		Type:      c.Kind(),
		Approved:  c.Approved,
		Content:   normalize(c.Content),
	}
	if p.opts.ShowDates && !c.Date.IsZero() {
		rec.Date = c.Date.Format(time.RFC3339)
	}
	return rec
}

// collectJSON appends a flat record in walk order.
func (p *Printer) collectJSON(c *types.Comment, depth int, s *renderState) error {
	s.records = append(s.records, p.newRecord(c, depth))
	return nil
}

// collectTree attaches a record to the innermost comment whose element is
// still open. Flattened replies arrive after their parent's element ended,
// so they land next to it.
func (p *Printer) collectTree(c *types.Comment, depth int, s *renderState) error {
	rec := p.newRecord(c, depth)
	if len(s.open) > 0 {
		parent := s.open[len(s.open)-1]
		parent.Children = append(parent.Children, rec)
	} else {
		s.records = append(s.records, rec)
	}
	s.open = append(s.open, rec)
	return nil
}

// writeJSON outputs records as indented JSON.
func (p *Printer) writeJSON(records []*jsonComment) error {
	if records == nil {
		records = []*jsonComment{}
	}
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
