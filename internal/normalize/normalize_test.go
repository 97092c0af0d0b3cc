package normalize

import (
	"strings"
	"testing"
	"time"

	"douyinsight/internal/types"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)

func testNormalizer() *Normalizer {
	return NewWithClock(func() time.Time { return testNow })
}

func TestNormalizeNetworkComment(t *testing.T) {
	raw := types.RawNetworkComment{
		CID:             "c1",
		Text:            "  画面太美了  ",
		CreateTime:      1756500000,
		DiggCount:       42,
		ReplyTotal:      3,
		ReplyToUserID:   "u9",
		ReplyToNickname: "小李",
		StickPosition:   1,
		IsHotComment:    1,
		IPLabel:         "广东",
		User: types.RawUser{
			UID:      "u1",
			SecUID:   "sec1",
			Nickname: "张三",
			AvatarThumb: types.RawAvatars{
				URLList: []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
			},
		},
		TextExtra: []types.RawTextExtra{
			{Type: 1, HashtagName: "风景"},
			{Type: 0, UserID: "u7"},
		},
	}

	c, flags := testNormalizer().Normalize(raw, 0)

	if c.ID != "c1" {
		t.Errorf("ID = %q, want c1", c.ID)
	}
	if c.Content != "画面太美了" {
		t.Errorf("Content = %q, want trimmed text", c.Content)
	}
	if c.AuthorID != "u1" || c.AuthorName != "张三" || c.AuthorSecID != "sec1" {
		t.Errorf("author fields = %q/%q/%q", c.AuthorID, c.AuthorName, c.AuthorSecID)
	}
	if c.AvatarURL != "https://example.com/a.jpg" {
		t.Errorf("AvatarURL = %q, want first url_list entry", c.AvatarURL)
	}
	if c.LikeCount != 42 || c.ReplyCount != 3 {
		t.Errorf("counts = %d/%d, want 42/3", c.LikeCount, c.ReplyCount)
	}
	if c.ReplyToAuthorID != "u9" || c.ReplyToName != "小李" {
		t.Errorf("reply target = %q/%q", c.ReplyToAuthorID, c.ReplyToName)
	}
	if !c.Pinned || !c.Featured {
		t.Errorf("pinned/featured = %v/%v, want true/true", c.Pinned, c.Featured)
	}
	if len(c.Hashtags) != 1 || c.Hashtags[0] != "风景" {
		t.Errorf("Hashtags = %v", c.Hashtags)
	}
	if len(c.MentionedIDs) != 1 || c.MentionedIDs[0] != "u7" {
		t.Errorf("MentionedIDs = %v", c.MentionedIDs)
	}
	if !c.HasTimestamp() || c.Timestamp.Unix() != 1756500000 {
		t.Errorf("Timestamp = %v", c.Timestamp)
	}
	if flags.SyntheticID || flags.UnknownTimestamp || flags.CoercedCount {
		t.Errorf("flags = %+v, want all clear", flags)
	}
}

func TestNormalizeNetworkDefaults(t *testing.T) {
	raw := types.RawNetworkComment{
		Text:       "无名氏评论",
		DiggCount:  -5,
		ReplyTotal: -1,
	}

	c, flags := testNormalizer().Normalize(raw, 3)

	if !strings.HasPrefix(c.ID, "syn_") {
		t.Errorf("ID = %q, want synthesized", c.ID)
	}
	if !flags.SyntheticID {
		t.Error("expected SyntheticID flag")
	}
	if c.LikeCount != 0 || c.ReplyCount != 0 {
		t.Errorf("negative counts not clamped: %d/%d", c.LikeCount, c.ReplyCount)
	}
	if !flags.CoercedCount {
		t.Error("expected CoercedCount flag for negative counts")
	}
	if c.HasTimestamp() || !flags.UnknownTimestamp {
		t.Errorf("zero create_time should map to unknown timestamp, got %v", c.Timestamp)
	}
}

func TestNormalizeDOMComment(t *testing.T) {
	raw := types.RawDOMComment{
		Nickname:  "李四",
		UserLink:  "/user/abc",
		Content:   "好看，支持",
		TimeLabel: "3分钟前",
		IPLabel:   "浙江",
		LikeText:  "1.2万",
		ReplyText: "回复 12",
	}

	c, flags := testNormalizer().Normalize(raw, 5)

	if c.AuthorID != "" {
		t.Errorf("AuthorID = %q, want empty for DOM source", c.AuthorID)
	}
	if c.LikeCount != 12000 {
		t.Errorf("LikeCount = %d, want 12000", c.LikeCount)
	}
	if c.ReplyCount != 12 {
		t.Errorf("ReplyCount = %d, want 12", c.ReplyCount)
	}
	if flags.CoercedCount {
		t.Error("both counts parseable, CoercedCount should be clear")
	}
	want := testNow.Add(-3 * time.Minute)
	if !c.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", c.Timestamp, want)
	}
	if !flags.SyntheticID {
		t.Error("DOM record without commentId should get a synthetic ID")
	}
}

func TestSyntheticCommentIDDeterministic(t *testing.T) {
	a := SyntheticCommentID("张三", "同样的内容", 4)
	b := SyntheticCommentID("张三", "同样的内容", 4)
	if a != b {
		t.Errorf("same inputs produced %q and %q", a, b)
	}
	if c := SyntheticCommentID("张三", "同样的内容", 5); c == a {
		t.Error("different positions should produce different IDs")
	}
}

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		in    string
		count int
		ok    bool
	}{
		{"328", 328, true},
		{" 42 ", 42, true},
		{"1.2万", 12000, true},
		{"3w", 30000, true},
		{"2亿", 200000000, true},
		{"1.5k", 1500, true},
		{"回复 12", 12, true},
		{"赞", 0, false},
		{"", 0, false},
		{"-3", 0, false},
	}
	for _, tt := range tests {
		count, ok := coerceCount(tt.in)
		if count != tt.count || ok != tt.ok {
			t.Errorf("coerceCount(%q) = (%d, %v), want (%d, %v)", tt.in, count, ok, tt.count, tt.ok)
		}
	}
}
