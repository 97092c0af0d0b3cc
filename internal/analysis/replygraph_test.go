package analysis

import (
	"testing"
	"time"

	"douyinsight/internal/types"
)

var graphBase = time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)

func comment(id, uid, name, content string, offset time.Duration) *types.Comment {
	return &types.Comment{
		ID:         id,
		AuthorID:   uid,
		AuthorName: name,
		Content:    content,
		Timestamp:  graphBase.Add(offset),
	}
}

func hasEdge(g *ReplyGraph, from, to string) bool {
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

func TestBuildReplyGraphMention(t *testing.T) {
	authors := []types.AuthorRef{
		{ID: "u1", Name: "李四"},
		{ID: "u2", Name: "张三"},
	}
	comments := []*types.Comment{
		comment("c1", "u2", "张三", "今天天气不错", 0),
		comment("c2", "u1", "李四", "@张三 说得对", time.Minute),
	}

	g := BuildReplyGraph(comments, authors)

	if !hasEdge(g, "u1", "u2") {
		t.Fatalf("expected edge u1->u2, got %v", g.Edges)
	}
}

func TestBuildReplyGraphMentionLongestNameWins(t *testing.T) {
	authors := []types.AuthorRef{
		{ID: "u1", Name: "张"},
		{ID: "u2", Name: "张三丰"},
		{ID: "u3", Name: "路人"},
	}
	comments := []*types.Comment{
		comment("c1", "u3", "路人", "@张三 你好", 0),
	}

	g := BuildReplyGraph(comments, authors)

	// 张 and 张三丰 both match the token; the longer display name wins.
	if !hasEdge(g, "u3", "u2") {
		t.Fatalf("expected edge u3->u2, got %v", g.Edges)
	}
}

func TestBuildReplyGraphExplicitTargetBeatsMention(t *testing.T) {
	authors := []types.AuthorRef{
		{ID: "u1", Name: "甲"},
		{ID: "u2", Name: "乙"},
		{ID: "u3", Name: "丙"},
	}
	c := comment("c1", "u1", "甲", "@丙 不对吧", 0)
	c.ReplyToAuthorID = "u2"

	g := BuildReplyGraph([]*types.Comment{c}, authors)

	if !hasEdge(g, "u1", "u2") {
		t.Fatalf("expected explicit edge u1->u2, got %v", g.Edges)
	}
	if hasEdge(g, "u1", "u3") {
		t.Error("mention should not fire when the explicit target resolved")
	}
}

func TestBuildReplyGraphUnknownExplicitTargetFallsThrough(t *testing.T) {
	authors := []types.AuthorRef{
		{ID: "u1", Name: "甲"},
		{ID: "u3", Name: "丙"},
	}
	c := comment("c1", "u1", "甲", "@丙 不对吧", 0)
	c.ReplyToAuthorID = "u404"

	g := BuildReplyGraph([]*types.Comment{c}, authors)

	if !hasEdge(g, "u1", "u3") {
		t.Fatalf("expected mention edge u1->u3 after unknown explicit target, got %v", g.Edges)
	}
}

func TestBuildReplyGraphTemporalFallback(t *testing.T) {
	comments := []*types.Comment{
		comment("c1", "u1", "甲", "这配乐太棒了", 0),
		comment("c2", "u2", "乙", "配乐太棒了啊", 2*time.Minute),
	}

	g := BuildReplyGraph(comments, nil)

	if !hasEdge(g, "u2", "u1") {
		t.Fatalf("expected fallback edge u2->u1, got %v", g.Edges)
	}
}

func TestBuildReplyGraphFallbackWindowExpires(t *testing.T) {
	comments := []*types.Comment{
		comment("c1", "u1", "甲", "这配乐太棒了", 0),
		comment("c2", "u2", "乙", "配乐太棒了啊", 6*time.Minute),
	}

	g := BuildReplyGraph(comments, nil)

	if len(g.Edges) != 0 {
		t.Fatalf("candidate outside the 5 minute window, got %v", g.Edges)
	}
}

func TestBuildReplyGraphExcludesUnknownTimestamps(t *testing.T) {
	noTime := &types.Comment{ID: "c1", AuthorID: "u1", AuthorName: "甲", Content: "这配乐太棒了"}
	comments := []*types.Comment{
		noTime,
		comment("c2", "u2", "乙", "配乐太棒了啊", time.Minute),
	}

	g := BuildReplyGraph(comments, nil)

	if len(g.Edges) != 0 {
		t.Fatalf("zero-time comments must not join the fallback, got %v", g.Edges)
	}
	if len(g.Nodes) != 2 {
		t.Errorf("both authors should still be nodes, got %v", g.Nodes)
	}
}

func TestBuildReplyGraphNoSelfLoops(t *testing.T) {
	comments := []*types.Comment{
		comment("c1", "u1", "甲", "我自己先说一句", 0),
		comment("c2", "u1", "甲", "我自己先说一句 补充", time.Minute),
	}
	c3 := comment("c3", "u1", "甲", "@甲 挂个自己", 2*time.Minute)
	comments = append(comments, c3)

	g := BuildReplyGraph(comments, []types.AuthorRef{{ID: "u1", Name: "甲"}})

	for _, e := range g.Edges {
		if e.From == e.To {
			t.Fatalf("self-loop %v", e)
		}
	}
}

func TestBuildReplyGraphDeduplicatesEdges(t *testing.T) {
	authors := []types.AuthorRef{{ID: "u1", Name: "甲"}, {ID: "u2", Name: "乙"}}
	comments := []*types.Comment{
		comment("c1", "u1", "甲", "@乙 第一次", 0),
		comment("c2", "u1", "甲", "@乙 第二次", time.Minute),
	}

	g := BuildReplyGraph(comments, authors)

	if len(g.Edges) != 1 {
		t.Fatalf("edges = %v, want a single deduplicated edge", g.Edges)
	}
}

func TestCentrality(t *testing.T) {
	authors := []types.AuthorRef{
		{ID: "u1", Name: "甲"}, {ID: "u2", Name: "乙"}, {ID: "u3", Name: "丙"},
	}
	comments := []*types.Comment{
		comment("c1", "u1", "甲", "原帖", 0),
		comment("c2", "u2", "乙", "@甲 赞同", time.Minute),
		comment("c3", "u3", "丙", "@甲 反对", 2*time.Minute),
	}

	g := BuildReplyGraph(comments, authors)

	// u1 has degree 2 over n-1 = 2.
	if got := g.Centrality["u1"]; got != 1.0 {
		t.Errorf("centrality(u1) = %v, want 1.0", got)
	}
	if got := g.Centrality["u2"]; got != 0.5 {
		t.Errorf("centrality(u2) = %v, want 0.5", got)
	}
	if !g.HighInfluence("u1") {
		t.Error("u1 should cross the opinion-leader threshold")
	}
}

func TestCentralitySingleNode(t *testing.T) {
	g := BuildReplyGraph([]*types.Comment{comment("c1", "u1", "甲", "独白", 0)}, nil)
	if got := g.Centrality["u1"]; got != 0 {
		t.Errorf("single-node centrality = %v, want 0", got)
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio("abc", "abc"); got != 1.0 {
		t.Errorf("Ratio(identical) = %v, want 1.0", got)
	}
	if got := Ratio("abc", "xyz"); got != 0 {
		t.Errorf("Ratio(disjoint) = %v, want 0", got)
	}
	// "abcd" vs "bcde": common run "bcd", ratio = 2*3/8.
	if got := Ratio("abcd", "bcde"); got != 0.75 {
		t.Errorf("Ratio(abcd, bcde) = %v, want 0.75", got)
	}
	if got := Ratio("", ""); got != 1 {
		t.Errorf("Ratio(empty) = %v, want 1", got)
	}
}
