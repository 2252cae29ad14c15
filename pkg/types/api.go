package types

import (
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInvalid  ErrKind = iota // bad argument (depth, filter expression, ...)
	ErrKindCorrupt                 // structurally broken thread (cycles, duplicate ids)
	ErrKindNotFound                // missing thread/comment
	ErrKindState                   // invalid operation for current state (e.g., consumed index)
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same kind and message, so
// errors built with Wrap still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Wrap returns a copy of the sentinel carrying cause as its underlying error.
func Wrap(sentinel *Error, cause error) error {
	return &Error{Kind: sentinel.Kind, Msg: sentinel.Msg, Err: cause}
}

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidDepth indicates a max depth below the flat-mode marker (-1).
	ErrInvalidDepth = &Error{Kind: ErrKindInvalid, Msg: "invalid max depth"}
	// ErrBadFilter indicates a filter expression that failed to parse.
	ErrBadFilter = &Error{Kind: ErrKindInvalid, Msg: "bad filter expression"}
	// ErrCycle indicates a parent chain that loops back on itself.
	ErrCycle = &Error{Kind: ErrKindCorrupt, Msg: "comment parent cycle"}
	// ErrDuplicate indicates a comment id reachable more than once.
	ErrDuplicate = &Error{Kind: ErrKindCorrupt, Msg: "duplicate comment id"}
	// ErrNotFound indicates a missing thread or comment.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrIndexConsumed indicates a child index reused after a destructive walk.
	ErrIndexConsumed = &Error{Kind: ErrKindState, Msg: "child index already consumed"}
)

// -----------------------------------------------------------------------------
// Core Identifiers & Records
// -----------------------------------------------------------------------------

// ID identifies a comment. Zero is reserved for "no parent".
type ID uint64

// NoParent is the parent id carried by top-level comments.
const NoParent ID = 0

// CommentType distinguishes regular comments from link notifications.
type CommentType string

const (
	TypeComment   CommentType = "comment"
	TypePingback  CommentType = "pingback"
	TypeTrackback CommentType = "trackback"
)

// IsPing reports whether t is a pingback or trackback.
func (t CommentType) IsPing() bool {
	return t == TypePingback || t == TypeTrackback
}

// Comment is a single entry in a thread. Only ID and Parent drive traversal;
// the remaining fields are payload handed to renderers unchanged.
type Comment struct {
	ID          ID                `json:"id"                     msgpack:"id"`
	Parent      ID                `json:"parent"                 msgpack:"parent"`
	Author      string            `json:"author"                 msgpack:"author"`
	AuthorEmail string            `json:"author_email,omitempty" msgpack:"author_email,omitempty"`
	AuthorURL   string            `json:"author_url,omitempty"   msgpack:"author_url,omitempty"`
	Content     string            `json:"content"                msgpack:"content"`
	Date        time.Time         `json:"date"                   msgpack:"date"`
	Approved    bool              `json:"approved"               msgpack:"approved"`
	Type        CommentType       `json:"type,omitempty"         msgpack:"type,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"         msgpack:"meta,omitempty"`
}

// NodeID returns the comment's identifier.
func (c *Comment) NodeID() ID { return c.ID }

// ParentID returns the identifier of the comment this one replies to.
func (c *Comment) ParentID() ID { return c.Parent }

// Kind returns the comment type, defaulting to TypeComment when unset.
func (c *Comment) Kind() CommentType {
	if c.Type == "" {
		return TypeComment
	}
	return c.Type
}

func (c *Comment) String() string {
	return fmt.Sprintf("comment %d (parent %d) by %q", c.ID, c.Parent, c.Author)
}
