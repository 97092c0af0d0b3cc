package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"douyinsight/internal/types"
)

// stopwords filtered out of word statistics, preserved from the
// original list.
var stopwords = map[string]struct{}{
	"了": {}, "的": {}, "我": {}, "你": {}, "是": {}, "都": {}, "把": {},
	"能": {}, "就": {}, "这": {}, "还": {}, "和": {}, "啊": {}, "在": {},
	"吧": {}, "有": {}, "也": {}, "不": {}, "呢": {}, "吗": {}, "啥": {},
	"怎么": {}, "一个": {}, "什么": {}, "一下": {}, "一样": {}, "一直": {},
	"为了": {}, "可以": {}, "那么": {},
}

var hashtagRe = regexp.MustCompile(`#([^#\s]+)`)

// Tokenize splits comment text into countable tokens: runs of
// letters/digits for non-CJK text, and overlapping bigrams for runs of
// Han characters. An approximation of dictionary segmentation; good
// enough for frequency charts.
func Tokenize(content string) []string {
	var tokens []string
	var latin, han []rune

	flushLatin := func() {
		if len(latin) > 1 {
			tokens = append(tokens, strings.ToLower(string(latin)))
		}
		latin = latin[:0]
	}
	flushHan := func() {
		for i := 0; i+1 < len(han); i++ {
			tokens = append(tokens, string(han[i:i+2]))
		}
		han = han[:0]
	}

	for _, r := range content {
		switch {
		case unicode.Is(unicode.Han, r):
			flushLatin()
			han = append(han, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flushHan()
			latin = append(latin, r)
		default:
			flushLatin()
			flushHan()
		}
	}
	flushLatin()
	flushHan()

	filtered := tokens[:0]
	for _, t := range tokens {
		if utf8.RuneCountInString(t) <= 1 {
			continue
		}
		if _, stop := stopwords[t]; stop {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// HotWords returns the topN most frequent tokens across all comment
// contents, most frequent first. Ties keep first-seen token order.
func HotWords(comments []*types.Comment, topN int) []LabelCount {
	freq := make(map[string]int)
	var order []string
	for _, c := range comments {
		for _, tok := range Tokenize(c.Content) {
			if freq[tok] == 0 {
				order = append(order, tok)
			}
			freq[tok]++
		}
	}
	return topCounts(order, freq, topN)
}

// Hashtags returns the topN most frequent #话题 tags. Tags annotated by
// the capture source are counted together with tags found in the text.
func Hashtags(comments []*types.Comment, topN int) []LabelCount {
	freq := make(map[string]int)
	var order []string
	add := func(tag string) {
		if tag == "" {
			return
		}
		if freq[tag] == 0 {
			order = append(order, tag)
		}
		freq[tag]++
	}
	for _, c := range comments {
		for _, tag := range c.Hashtags {
			add(tag)
		}
		for _, m := range hashtagRe.FindAllStringSubmatch(c.Content, -1) {
			add(m[1])
		}
	}
	return topCounts(order, freq, topN)
}

func topCounts(order []string, freq map[string]int, topN int) []LabelCount {
	counts := make([]LabelCount, 0, len(order))
	for _, label := range order {
		counts = append(counts, LabelCount{Label: label, Count: freq[label]})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if topN > 0 && len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}
