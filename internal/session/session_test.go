package session

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	"douyinsight/internal/normalize"
	"douyinsight/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func networkComment(id, uid, nickname, text string) types.RawNetworkComment {
	return types.RawNetworkComment{
		CID:        id,
		Text:       text,
		CreateTime: 1756500000,
		User:       types.RawUser{UID: uid, Nickname: nickname},
	}
}

func TestDeduplicatorAccept(t *testing.T) {
	d := NewDeduplicator(4)

	if !d.Accept("c1") {
		t.Fatal("first Accept(c1) should succeed")
	}
	if d.Accept("c1") {
		t.Fatal("second Accept(c1) should be rejected")
	}
	if !d.Seen("c1") {
		t.Error("Seen(c1) should be true")
	}
	if d.Seen("c2") {
		t.Error("Seen(c2) should be false")
	}
	if d.Count() != 1 {
		t.Errorf("Count = %d, want 1", d.Count())
	}

	d.Reset()
	if d.Count() != 0 || d.Seen("c1") {
		t.Error("Reset should clear the seen set")
	}
}

func TestSessionDuplicateLeavesTableUnchanged(t *testing.T) {
	s := New(normalize.New(), testLogger)

	if _, ok := s.Add(networkComment("c1", "u1", "张三", "first")); !ok {
		t.Fatal("first insert rejected")
	}
	if _, ok := s.Add(networkComment("c1", "u1", "张三", "second")); ok {
		t.Fatal("duplicate ID accepted")
	}

	if s.Len() != 1 {
		t.Errorf("table length = %d, want 1", s.Len())
	}
	if got := s.Comments()[0].Content; got != "first" {
		t.Errorf("surviving record content = %q, want the first insert", got)
	}
	if s.Stats().Duplicates.Load() != 1 {
		t.Errorf("duplicate counter = %d, want 1", s.Stats().Duplicates.Load())
	}
}

func TestSessionPreservesInsertionOrder(t *testing.T) {
	s := New(normalize.New(), testLogger)
	for i := 0; i < 10; i++ {
		s.Add(networkComment(fmt.Sprintf("c%d", i), fmt.Sprintf("u%d", i), "用户", "内容"))
	}
	for i, c := range s.Comments() {
		if want := fmt.Sprintf("c%d", i); c.ID != want {
			t.Fatalf("comment %d has ID %q, want %q", i, c.ID, want)
		}
	}
}

func TestSessionAuthorRegistry(t *testing.T) {
	s := New(normalize.New(), testLogger)
	s.Add(networkComment("c1", "u1", "张三", "a"))
	s.Add(networkComment("c2", "u2", "李四", "b"))
	s.Add(networkComment("c3", "u1", "张三", "c"))

	authors := s.Authors()
	if len(authors) != 2 {
		t.Fatalf("authors = %d, want 2", len(authors))
	}
	if authors[0].ID != "u1" || authors[0].Name != "张三" {
		t.Errorf("authors[0] = %+v", authors[0])
	}
	if authors[1].ID != "u2" || authors[1].Name != "李四" {
		t.Errorf("authors[1] = %+v", authors[1])
	}
}

func TestSessionDuplicateDoesNotInflateQualityCounters(t *testing.T) {
	s := New(normalize.New(), testLogger)

	raw := networkComment("c1", "u1", "张三", "内容")
	raw.CreateTime = 0 // unknown timestamp

	s.Add(raw)
	s.Add(raw)
	s.Add(raw)

	stats := s.Stats().Snapshot()
	if stats["unknown_timestamps"] != 1 {
		t.Errorf("unknown_timestamps = %d, want 1 (duplicates must not count)", stats["unknown_timestamps"])
	}
	if stats["duplicates"] != 2 {
		t.Errorf("duplicates = %d, want 2", stats["duplicates"])
	}
	if stats["accepted"] != 1 {
		t.Errorf("accepted = %d, want 1", stats["accepted"])
	}
}

func TestSessionCountsDefaults(t *testing.T) {
	s := New(normalize.New(), testLogger)

	s.Add(types.RawDOMComment{Nickname: "王五", Content: "没有时间戳", LikeText: "赞"})

	stats := s.Stats().Snapshot()
	if stats["synthetic_ids"] != 1 {
		t.Errorf("synthetic_ids = %d, want 1", stats["synthetic_ids"])
	}
	if stats["unknown_timestamps"] != 1 {
		t.Errorf("unknown_timestamps = %d, want 1", stats["unknown_timestamps"])
	}
	if stats["coerced_counts"] != 1 {
		t.Errorf("coerced_counts = %d, want 1", stats["coerced_counts"])
	}
	if stats["accepted"] != 1 {
		t.Errorf("accepted = %d, want 1", stats["accepted"])
	}
}
