package analysis

import (
	"strings"

	"douyinsight/internal/types"
)

// Sentiment is the crude three-way classification of a comment.
type Sentiment string

const (
	SentimentPositive Sentiment = "正面"
	SentimentNegative Sentiment = "负面"
	SentimentNeutral  Sentiment = "中性"
)

// Lexicons carried over from the original keyword-matching classifier.
var (
	positiveWords = []string{
		"喜欢", "好看", "漂亮", "美丽", "精彩", "帅", "棒", "赞", "支持",
		"开心", "感动", "完美", "厉害", "牛", "笑", "爱", "感谢", "谢谢",
	}
	negativeWords = []string{
		"不好", "难看", "失望", "差劲", "烂", "丑", "太差", "恶心", "讨厌",
		"无聊", "垃圾", "白痴", "傻", "枯燥", "不行", "假", "骗", "坑",
	}
)

// ClassifySentiment counts positive and negative lexicon hits in the
// content and picks the majority; ties are neutral. The original
// counted segmented words; substring occurrence counts approximate that
// without a segmenter.
func ClassifySentiment(content string) Sentiment {
	pos := lexiconHits(content, positiveWords)
	neg := lexiconHits(content, negativeWords)
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func lexiconHits(content string, lexicon []string) int {
	hits := 0
	for _, w := range lexicon {
		hits += strings.Count(content, w)
	}
	return hits
}

// SentimentDistribution tallies the classification over the table in a
// fixed 正面/负面/中性 order.
func SentimentDistribution(comments []*types.Comment) []LabelCount {
	counts := []LabelCount{
		{Label: string(SentimentPositive)},
		{Label: string(SentimentNegative)},
		{Label: string(SentimentNeutral)},
	}
	for _, c := range comments {
		switch ClassifySentiment(c.Content) {
		case SentimentPositive:
			counts[0].Count++
		case SentimentNegative:
			counts[1].Count++
		default:
			counts[2].Count++
		}
	}
	return counts
}
