// Package filter selects comments with qlbridge boolean expressions such as
//
//	author like "Al*" and approved = true
//	id > 100 or meta.lang = "fr"
//
// Recognized identifiers are id, parent, author, author_email, author_url,
// content, type, approved, date and meta.<key>. Field names are matched
// case-insensitively, meta keys exactly. An unknown identifier never matches.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/qlbridge/expr"
	"github.com/araddon/qlbridge/value"
	qlvm "github.com/araddon/qlbridge/vm"

	"github.com/joshuapare/threadkit/pkg/types"
)

const metaPrefix = "meta."

// Filter is a compiled comment predicate. The zero value and a Filter
// compiled from an empty query match everything.
type Filter struct {
	query string
	node  expr.Node
}

// Compile parses q. A parse failure wraps types.ErrBadFilter.
func Compile(q string) (*Filter, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return &Filter{}, nil
	}
	node, err := expr.ParseExpression(q)
	if err != nil {
		return nil, types.Wrap(types.ErrBadFilter, fmt.Errorf("%q: %w", q, err))
	}
	return &Filter{query: q, node: node}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.query }

// Match reports whether c satisfies the filter. A nil comment never matches.
func (f *Filter) Match(c *types.Comment) bool {
	if c == nil {
		return false
	}
	if f == nil || f.node == nil {
		return true
	}
	matched, ok := qlvm.MatchesExpr(commentContext{c}, f.node)
	return ok && matched
}

// Apply returns the comments that match, in their original order. The
// input is not modified.
//
// Dropping a comment does not drop its replies: they keep a parent id that
// is no longer present. The walker renders such orphans only with an
// unlimited (0) or flat (-1) depth; under a positive cap they are skipped.
func (f *Filter) Apply(comments []*types.Comment) []*types.Comment {
	out := make([]*types.Comment, 0, len(comments))
	for _, c := range comments {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// commentContext exposes a comment to the qlbridge vm.
type commentContext struct {
	c *types.Comment
}

func (cc commentContext) Get(key string) (value.Value, bool) {
	key = strings.Trim(key, "`")
	if len(key) > len(metaPrefix) && strings.EqualFold(key[:len(metaPrefix)], metaPrefix) {
		v, found := cc.c.Meta[key[len(metaPrefix):]]
		if !found {
			return value.NewNilValue(), false
		}
		return value.NewStringValue(v), true
	}

	c := cc.c
	switch strings.ToLower(key) {
	case "id":
		return value.NewIntValue(int64(c.ID)), true
	case "parent":
		return value.NewIntValue(int64(c.Parent)), true
	case "author":
		return value.NewStringValue(c.Author), true
	case "author_email":
		return value.NewStringValue(c.AuthorEmail), true
	case "author_url":
		return value.NewStringValue(c.AuthorURL), true
	case "content":
		return value.NewStringValue(c.Content), true
	case "type":
		return value.NewStringValue(string(c.Kind())), true
	case "approved":
		return value.NewBoolValue(c.Approved), true
	case "date":
		return value.NewTimeValue(c.Date), true
	}
	return value.NewNilValue(), false
}

func (cc commentContext) Row() map[string]value.Value {
	c := cc.c
	row := map[string]value.Value{
		"id":           value.NewIntValue(int64(c.ID)),
		"parent":       value.NewIntValue(int64(c.Parent)),
		"author":       value.NewStringValue(c.Author),
		"author_email": value.NewStringValue(c.AuthorEmail),
		"author_url":   value.NewStringValue(c.AuthorURL),
		"content":      value.NewStringValue(c.Content),
		"type":         value.NewStringValue(string(c.Kind())),
		"approved":     value.NewBoolValue(c.Approved),
		"date":         value.NewTimeValue(c.Date),
	}
	for k, v := range c.Meta {
		row[metaPrefix+k] = value.NewStringValue(v)
	}
	return row
}

func (cc commentContext) Ts() time.Time { return cc.c.Date }
