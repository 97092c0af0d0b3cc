// Package analysis holds the derived views computed from the canonical
// comment table: the inferred reply graph, the influence ranking, topic
// tags, sentiment, hot words and time distributions. Every function here
// is a single-pass (or sort + single-pass) transform with no I/O.
package analysis

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"douyinsight/internal/types"
)

// Heuristic constants carried over unchanged from the original tool.
// They are empirical, not derived; tuning them changes output.
const (
	// fallbackWindow is how far back in time a comment may be to count
	// as a reply candidate.
	fallbackWindow = 5 * time.Minute

	// fallbackSimilarity is the ratio above which an earlier comment is
	// assumed to be the reply target.
	fallbackSimilarity = 0.4

	// highInfluenceCentrality marks authors rendered as opinion leaders
	// in the network chart. Independent of the influence score.
	highInfluenceCentrality = 0.1
)

var mentionRe = regexp.MustCompile(`@([^\s:：]+)`)

// ReplyGraph is the inferred directed "replied-to" relation plus the
// per-author degree centrality derived from it.
type ReplyGraph struct {
	// Edges in inference order, self-loops removed, duplicates collapsed.
	Edges []types.ReplyEdge

	// Nodes are the distinct author keys of the input comments, in
	// first-seen order.
	Nodes []string

	// Names maps author keys to display names for rendering.
	Names map[string]string

	// Centrality is (in-degree + out-degree) / (node count - 1).
	Centrality map[string]float64
}

// HighInfluence reports whether the author's centrality crosses the
// opinion-leader threshold.
func (g *ReplyGraph) HighInfluence(authorKey string) bool {
	return g.Centrality[authorKey] > highInfluenceCentrality
}

// BuildReplyGraph infers reply edges between authors. Per comment, in
// priority order: the explicit reply-target field, then the first
// resolvable @-mention, then a temporal window + text-similarity
// fallback. One edge at most is inferred per comment.
func BuildReplyGraph(comments []*types.Comment, authors []types.AuthorRef) *ReplyGraph {
	g := &ReplyGraph{
		Names:      make(map[string]string, len(authors)),
		Centrality: make(map[string]float64),
	}

	known := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		known[a.ID] = struct{}{}
		if _, ok := g.Names[a.ID]; !ok {
			g.Names[a.ID] = a.Name
		}
	}

	nodeSeen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		key := c.AuthorKey()
		if key == "" {
			continue
		}
		if _, ok := nodeSeen[key]; !ok {
			nodeSeen[key] = struct{}{}
			g.Nodes = append(g.Nodes, key)
			if _, named := g.Names[key]; !named {
				g.Names[key] = c.AuthorName
			}
		}
	}

	edgeSeen := make(map[types.ReplyEdge]struct{})
	addEdge := func(from, to string) {
		if from == "" || to == "" || from == to {
			return
		}
		e := types.ReplyEdge{From: from, To: to}
		if _, dup := edgeSeen[e]; dup {
			return
		}
		edgeSeen[e] = struct{}{}
		g.Edges = append(g.Edges, e)
	}

	resolved := make(map[string]bool, len(comments)) // comment ID -> edge emitted

	for _, c := range comments {
		from := c.AuthorKey()

		// 1. Explicit reply-target field, when it names a known author.
		if c.ReplyToAuthorID != "" {
			if _, ok := known[c.ReplyToAuthorID]; ok {
				addEdge(from, c.ReplyToAuthorID)
				resolved[c.ID] = true
				continue
			}
		}

		// 2. First resolvable @-mention.
		if to, ok := resolveMention(c.Content, authors); ok {
			addEdge(from, to)
			resolved[c.ID] = true
		}
	}

	// 3. Temporal + lexical fallback over time-known comments only.
	timed := make([]*types.Comment, 0, len(comments))
	for _, c := range comments {
		if c.HasTimestamp() {
			timed = append(timed, c)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Timestamp.Before(timed[j].Timestamp)
	})

	for i, c := range timed {
		if resolved[c.ID] {
			continue
		}
		// First earlier in-window comment above the similarity threshold
		// wins, not the best-scoring one. Changing this to best-match
		// changes output on near-tied inputs.
		for j := 0; j < i; j++ {
			prev := timed[j]
			if !prev.Timestamp.Before(c.Timestamp) {
				continue
			}
			if c.Timestamp.Sub(prev.Timestamp) > fallbackWindow {
				continue
			}
			if looksLikeReply(c.Content, prev.Content) {
				addEdge(c.AuthorKey(), prev.AuthorKey())
				break
			}
		}
	}

	g.computeCentrality()
	return g
}

// looksLikeReply applies the fallback test: similarity ratio above the
// threshold, or any whitespace-separated token of the earlier comment
// (longer than one rune) contained in the later one.
func looksLikeReply(current, previous string) bool {
	if Ratio(current, previous) > fallbackSimilarity {
		return true
	}
	for _, tok := range strings.Fields(previous) {
		if utf8.RuneCountInString(tok) > 1 && strings.Contains(current, tok) {
			return true
		}
	}
	return false
}

// resolveMention finds the first @token in the content that matches a
// known display name by substring containment in either direction. The
// longest matching name wins; resolution stops at the first token that
// matches anything.
func resolveMention(content string, authors []types.AuthorRef) (authorID string, ok bool) {
	for _, m := range mentionRe.FindAllStringSubmatch(content, -1) {
		token := m[1]
		var best types.AuthorRef
		bestLen := -1
		for _, a := range authors {
			if a.Name == "" {
				continue
			}
			if !strings.Contains(a.Name, token) && !strings.Contains(token, a.Name) {
				continue
			}
			if l := utf8.RuneCountInString(a.Name); l > bestLen {
				best, bestLen = a, l
			}
		}
		if bestLen >= 0 {
			return best.ID, true
		}
	}
	return "", false
}

func (g *ReplyGraph) computeCentrality() {
	if len(g.Nodes) < 2 {
		for _, n := range g.Nodes {
			g.Centrality[n] = 0
		}
		return
	}
	degree := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		degree[e.From]++
		degree[e.To]++
	}
	denom := float64(len(g.Nodes) - 1)
	for _, n := range g.Nodes {
		g.Centrality[n] = float64(degree[n]) / denom
	}
}
