package analysis

import (
	"sort"

	"douyinsight/internal/types"
)

// HourDistribution buckets comments by hour of day. Comments with an
// unknown timestamp are excluded. Bucketing is order-independent; the
// result is always hours 0..23 in order.
func HourDistribution(comments []*types.Comment) [24]int {
	var buckets [24]int
	for _, c := range comments {
		if hour, ok := c.HourOfDay(); ok {
			buckets[hour]++
		}
	}
	return buckets
}

// ActivityPeriods are the named day-part buckets of the user-portrait
// analysis.
var ActivityPeriods = []struct {
	Label      string
	From, To   int // inclusive hour range
}{
	{"深夜 (0-5点)", 0, 5},
	{"早晨 (6-9点)", 6, 9},
	{"工作时间 (10-17点)", 10, 17},
	{"晚间 (18-23点)", 18, 23},
}

// ActivityDistribution rolls the hour histogram up into day-part
// buckets.
func ActivityDistribution(comments []*types.Comment) []LabelCount {
	hours := HourDistribution(comments)
	counts := make([]LabelCount, len(ActivityPeriods))
	for i, p := range ActivityPeriods {
		counts[i].Label = p.Label
		for h := p.From; h <= p.To; h++ {
			counts[i].Count += hours[h]
		}
	}
	return counts
}

// TopicTrend is the per-day occurrence counts of each topic category.
type TopicTrend struct {
	Dates  []string         // "2006-01-02", ascending
	Series map[string][]int // category name -> count per date
}

// DailyTopicTrend computes how often each topic category appears per
// calendar day. Comments with unknown timestamps are excluded. Returns
// a trend spanning at least two days, or nil when the data covers fewer.
func DailyTopicTrend(comments []*types.Comment, categories []TopicCategory) *TopicTrend {
	perDay := make(map[string]map[string]int)
	for _, c := range comments {
		if !c.HasTimestamp() {
			continue
		}
		day := c.Timestamp.Format("2006-01-02")
		if perDay[day] == nil {
			perDay[day] = make(map[string]int)
		}
		for _, name := range TagTopics(c.Content, categories) {
			perDay[day][name]++
		}
	}
	if len(perDay) < 2 {
		return nil
	}

	trend := &TopicTrend{Series: make(map[string][]int, len(categories))}
	for day := range perDay {
		trend.Dates = append(trend.Dates, day)
	}
	sort.Strings(trend.Dates)
	for _, cat := range categories {
		series := make([]int, len(trend.Dates))
		for i, day := range trend.Dates {
			series[i] = perDay[day][cat.Name]
		}
		trend.Series[cat.Name] = series
	}
	return trend
}
