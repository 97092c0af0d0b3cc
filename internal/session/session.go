// Package session owns the mutable state of one scraping run: the
// canonical comment table, the deduplicator, the known-author registry
// and the data-quality counters. All of it is scoped to the Session
// object the caller holds; the core keeps no ambient state.
package session

import (
	"log/slog"
	"sync/atomic"

	"douyinsight/internal/normalize"
	"douyinsight/internal/types"
)

// Stats are the run counters reported back to the user as data-quality
// warnings. They never abort anything.
type Stats struct {
	Accepted          atomic.Int64
	Duplicates        atomic.Int64
	SyntheticIDs      atomic.Int64
	UnknownTimestamps atomic.Int64
	CoercedCounts     atomic.Int64
}

// Snapshot returns the counters as a plain map for logging.
func (s *Stats) Snapshot() map[string]int64 {
	return map[string]int64{
		"accepted":           s.Accepted.Load(),
		"duplicates":         s.Duplicates.Load(),
		"synthetic_ids":      s.SyntheticIDs.Load(),
		"unknown_timestamps": s.UnknownTimestamps.Load(),
		"coerced_counts":     s.CoercedCounts.Load(),
	}
}

// Session is the canonical table plus its bookkeeping for one run.
// Single-writer: Add must not be called concurrently, matching the
// sequential scraping pass that feeds it.
type Session struct {
	normalizer *normalize.Normalizer
	dedup      *Deduplicator
	comments   []*types.Comment
	authorIdx  map[string]int // author key -> index into authors
	authors    []types.AuthorRef
	stats      Stats
	pos        int
	logger     *slog.Logger
}

// New creates an empty Session.
func New(n *normalize.Normalizer, logger *slog.Logger) *Session {
	return &Session{
		normalizer: n,
		dedup:      NewDeduplicator(1024),
		authorIdx:  make(map[string]int),
		logger:     logger.With("component", "session"),
	}
}

// Add normalizes one raw record and inserts it into the canonical table
// unless it is a duplicate. The returned Comment is nil for duplicates.
func (s *Session) Add(raw types.RawComment) (*types.Comment, bool) {
	c, flags := s.normalizer.Normalize(raw, s.pos)
	s.pos++

	if !s.dedup.Accept(c.ID) {
		s.stats.Duplicates.Add(1)
		s.logger.Debug("duplicate comment skipped", "id", c.ID)
		return nil, false
	}

	// Counters track accepted records only; a re-scraped duplicate must
	// not inflate the data-quality numbers.
	if flags.SyntheticID {
		s.stats.SyntheticIDs.Add(1)
	}
	if flags.UnknownTimestamp {
		s.stats.UnknownTimestamps.Add(1)
	}
	if flags.CoercedCount {
		s.stats.CoercedCounts.Add(1)
	}

	s.comments = append(s.comments, c)
	s.registerAuthor(c.AuthorKey(), c.AuthorName)
	s.stats.Accepted.Add(1)
	return c, true
}

// registerAuthor records an (ID, display name) pair the first time an
// author key appears; a later non-empty display name fills an earlier
// blank one.
func (s *Session) registerAuthor(key, name string) {
	if key == "" {
		return
	}
	if i, ok := s.authorIdx[key]; ok {
		if s.authors[i].Name == "" && name != "" {
			s.authors[i].Name = name
		}
		return
	}
	s.authorIdx[key] = len(s.authors)
	s.authors = append(s.authors, types.AuthorRef{ID: key, Name: name})
}

// Comments returns the canonical table in first-seen order. The slice is
// shared; callers must treat records as read-only.
func (s *Session) Comments() []*types.Comment { return s.comments }

// Authors returns the known (author ID, display name) pairs in
// first-seen order.
func (s *Session) Authors() []types.AuthorRef { return s.authors }

// Len returns the number of comments in the canonical table.
func (s *Session) Len() int { return len(s.comments) }

// Stats exposes the run counters.
func (s *Session) Stats() *Stats { return &s.stats }
