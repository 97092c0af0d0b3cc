package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"
)

// Comment is the canonical record every analysis reads from. It is created
// once by the normalizer and never mutated after insertion into the table;
// derived values (content length, hour of day) are computed on read.
type Comment struct {
	// ID is the platform comment ID, or a synthesized hash when the source
	// omits it. Unique within one canonical table.
	ID string

	AuthorName  string
	AuthorID    string // empty for DOM-scraped sources
	AuthorSecID string
	AvatarURL   string
	Region      string

	// Timestamp is the comment creation time. The zero value means the
	// source timestamp was missing or unparseable; such comments are
	// excluded from all time-ordered operations.
	Timestamp time.Time

	Content    string
	LikeCount  int
	ReplyCount int

	// ReplyToAuthorID is set only when the source supplies an explicit
	// reply relation.
	ReplyToAuthorID string
	ReplyToName     string

	Pinned   bool
	Featured bool

	Hashtags     []string
	MentionedIDs []string
}

// HasTimestamp reports whether the comment carries a usable timestamp.
func (c *Comment) HasTimestamp() bool { return !c.Timestamp.IsZero() }

// ContentLength returns the content length in runes.
func (c *Comment) ContentLength() int { return utf8.RuneCountInString(c.Content) }

// HourOfDay returns the local hour the comment was posted. ok is false for
// comments with an unknown timestamp.
func (c *Comment) HourOfDay() (hour int, ok bool) {
	if !c.HasTimestamp() {
		return 0, false
	}
	return c.Timestamp.Hour(), true
}

// AuthorKey returns the identifier used to group comments by author:
// the platform author ID when present, otherwise a synthetic per-run ID
// derived from the display name.
func (c *Comment) AuthorKey() string {
	if c.AuthorID != "" {
		return c.AuthorID
	}
	return SyntheticAuthorID(c.AuthorName)
}

// AuthorRef is one known (author ID, display name) pair, supplied to the
// reply-graph builder for mention resolution.
type AuthorRef struct {
	ID   string
	Name string
}

// SyntheticAuthorID derives a stable-within-run author ID from a display
// name. Two comments with the same display name and no platform ID are
// treated as the same author only inside a single run; there is no
// cross-run identity guarantee.
func SyntheticAuthorID(displayName string) string {
	runes := []rune(displayName)
	prefix := displayName
	if len(runes) > 8 {
		prefix = string(runes[:8])
	}
	sum := sha256.Sum256([]byte(displayName))
	return prefix + "#" + hex.EncodeToString(sum[:2])
}

// ReplyEdge is a directed "author From replied to author To" relation.
// The builder guarantees From != To and no duplicate edges.
type ReplyEdge struct {
	From string
	To   string
}

// InfluenceRecord is one author's aggregate engagement metrics plus the
// composite 0-100 influence score.
type InfluenceRecord struct {
	AuthorID         string
	AuthorName       string
	CommentCount     int
	TotalLikes       int
	AvgContentLength float64
	Score            float64
}
