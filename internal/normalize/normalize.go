// Package normalize maps heterogeneous raw comment records onto the
// canonical Comment schema. Normalization is a pure function: malformed
// fields are replaced by documented defaults and reported via Flags,
// never as errors.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"douyinsight/internal/types"
)

// Flags reports which defaults were substituted while normalizing one
// record, so the session can keep data-quality counters.
type Flags struct {
	SyntheticID      bool
	UnknownTimestamp bool
	CoercedCount     bool
}

// Normalizer converts raw source variants into canonical Comments.
// The zero value is not usable; construct with New.
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer. The clock is injectable for tests of
// relative-label timestamp parsing.
func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewWithClock creates a Normalizer with a fixed clock.
func NewWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize converts one raw record into a canonical Comment. pos is the
// record's position in the source sequence; it participates in synthetic
// ID generation for records without an ID. Never fails.
func (n *Normalizer) Normalize(raw types.RawComment, pos int) (*types.Comment, Flags) {
	switch r := raw.(type) {
	case types.RawNetworkComment:
		return n.fromNetwork(r, pos)
	case *types.RawNetworkComment:
		return n.fromNetwork(*r, pos)
	case types.RawDOMComment:
		return n.fromDOM(r, pos)
	case *types.RawDOMComment:
		return n.fromDOM(*r, pos)
	default:
		// Unknown variant: an empty record with a synthetic ID, counted
		// as fully defaulted.
		c := &types.Comment{ID: SyntheticCommentID("", "", pos)}
		return c, Flags{SyntheticID: true, UnknownTimestamp: true}
	}
}

func (n *Normalizer) fromNetwork(r types.RawNetworkComment, pos int) (*types.Comment, Flags) {
	var flags Flags

	c := &types.Comment{
		ID:              strings.TrimSpace(r.CID),
		AuthorName:      strings.TrimSpace(r.User.Nickname),
		AuthorID:        r.User.UID,
		AuthorSecID:     r.User.SecUID,
		Region:          r.IPLabel,
		Content:         strings.TrimSpace(r.Text),
		LikeCount:       clampCount(r.DiggCount),
		ReplyCount:      clampCount(r.ReplyTotal),
		ReplyToAuthorID: r.ReplyToUserID,
		ReplyToName:     r.ReplyToNickname,
		Pinned:          r.StickPosition > 0,
		Featured:        r.IsHotComment > 0,
	}

	if len(r.User.AvatarThumb.URLList) > 0 {
		c.AvatarURL = r.User.AvatarThumb.URLList[0]
	}

	for _, extra := range r.TextExtra {
		if extra.HashtagName != "" {
			c.Hashtags = append(c.Hashtags, extra.HashtagName)
		}
		if extra.Type == 0 && extra.UserID != "" {
			c.MentionedIDs = append(c.MentionedIDs, extra.UserID)
		}
	}

	if r.CreateTime > 0 {
		c.Timestamp = time.Unix(r.CreateTime, 0)
	} else {
		flags.UnknownTimestamp = true
	}
	if r.DiggCount < 0 || r.ReplyTotal < 0 {
		flags.CoercedCount = true
	}

	if c.ID == "" {
		c.ID = SyntheticCommentID(c.AuthorName, c.Content, pos)
		flags.SyntheticID = true
	}
	return c, flags
}

func (n *Normalizer) fromDOM(r types.RawDOMComment, pos int) (*types.Comment, Flags) {
	var flags Flags

	c := &types.Comment{
		ID:         strings.TrimSpace(r.CommentID),
		AuthorName: strings.TrimSpace(r.Nickname),
		AvatarURL:  r.UserLink,
		Region:     strings.TrimSpace(r.IPLabel),
		Content:    strings.TrimSpace(r.Content),
	}

	var likeOK, replyOK bool
	c.LikeCount, likeOK = coerceCount(r.LikeText)
	c.ReplyCount, replyOK = coerceCount(r.ReplyText)
	flags.CoercedCount = !likeOK || !replyOK

	if t, ok := ParseTimestamp(r.TimeLabel, n.now()); ok {
		c.Timestamp = t
	} else {
		flags.UnknownTimestamp = true
	}

	if c.ID == "" {
		c.ID = SyntheticCommentID(c.AuthorName, c.Content, pos)
		flags.SyntheticID = true
	}
	return c, flags
}

// SyntheticCommentID builds a deterministic ID from the display name, a
// prefix of the content, and the record's position in the source
// sequence. Position-dependent, so synthesized IDs are NOT stable across
// runs and must not be used for cross-session deduplication.
func SyntheticCommentID(displayName, content string, pos int) string {
	prefix := content
	if runes := []rune(content); len(runes) > 32 {
		prefix = string(runes[:32])
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%s\x00%s\x00%d", displayName, prefix, pos))
	return "syn_" + hex.EncodeToString(sum[:16])
}

var countRe = regexp.MustCompile(`\d+`)

// unitMultipliers handles abbreviated counters like 1.2万.
var unitMultipliers = map[string]float64{
	"万": 10_000,
	"w": 10_000,
	"W": 10_000,
	"亿": 100_000_000,
	"k": 1_000,
	"K": 1_000,
}

// coerceCount turns display text like "328", "1.2万" or "赞" into a
// non-negative count. ok is false when a default had to be substituted.
func coerceCount(s string) (count int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}

	for unit, mult := range unitMultipliers {
		if base, found := strings.CutSuffix(s, unit); found {
			if f, err := strconv.ParseFloat(strings.TrimSpace(base), 64); err == nil && f >= 0 {
				return int(f * mult), true
			}
		}
	}

	// Last resort: first digit run anywhere in the text.
	if m := countRe.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	return 0, false
}

func clampCount(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
