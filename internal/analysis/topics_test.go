package analysis

import (
	"reflect"
	"testing"

	"douyinsight/internal/types"
)

func TestTagTopicsMultiLabel(t *testing.T) {
	got := TagTopics("质量很差，想退货，客服态度也不好", DefaultTopicCategories)
	want := []string{"质量问题", "服务体验"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagTopics = %v, want %v", got, want)
	}
}

func TestTagTopicsNoMatch(t *testing.T) {
	if got := TagTopics("今天晚饭吃什么", DefaultTopicCategories); got != nil {
		t.Errorf("TagTopics = %v, want nil", got)
	}
}

func TestTagTopicsCaseInsensitive(t *testing.T) {
	got := TagTopics("YYDS 太强了", LanguageStyleCategories)
	if len(got) == 0 || got[0] != "网络流行语" {
		t.Errorf("TagTopics = %v, want 网络流行语", got)
	}
}

func TestCountTopicsPreservesCategoryOrder(t *testing.T) {
	comments := []*types.Comment{
		{Content: "价格有点贵"},
		{Content: "质量不错，价格实惠"},
	}

	counts := CountTopics(comments, DefaultTopicCategories)

	if len(counts) != len(DefaultTopicCategories) {
		t.Fatalf("counts = %d entries, want %d", len(counts), len(DefaultTopicCategories))
	}
	for i, cat := range DefaultTopicCategories {
		if counts[i].Label != cat.Name {
			t.Fatalf("counts[%d] = %q, want %q", i, counts[i].Label, cat.Name)
		}
	}
	if counts[0].Count != 1 { // 质量问题
		t.Errorf("质量问题 = %d, want 1", counts[0].Count)
	}
	if counts[1].Count != 2 { // 价格相关
		t.Errorf("价格相关 = %d, want 2", counts[1].Count)
	}
}

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		content string
		want    Sentiment
	}{
		{"太好看了，支持", SentimentPositive},
		{"真难看，太失望了", SentimentNegative},
		{"就这样吧", SentimentNeutral},
		{"好看是好看，但是太贵了失望", SentimentPositive}, // 2 positive vs 1 negative
		{"", SentimentNeutral},
	}
	for _, tt := range tests {
		if got := ClassifySentiment(tt.content); got != tt.want {
			t.Errorf("ClassifySentiment(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestSentimentDistributionOrder(t *testing.T) {
	comments := []*types.Comment{
		{Content: "好看"},
		{Content: "难看"},
		{Content: "一般"},
		{Content: "赞"},
	}

	counts := SentimentDistribution(comments)

	if counts[0].Label != "正面" || counts[1].Label != "负面" || counts[2].Label != "中性" {
		t.Fatalf("label order = %v", counts)
	}
	if counts[0].Count != 2 || counts[1].Count != 1 || counts[2].Count != 1 {
		t.Errorf("counts = %v, want 2/1/1", counts)
	}
}
