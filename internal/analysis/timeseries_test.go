package analysis

import (
	"testing"
	"time"

	"douyinsight/internal/types"
)

func timedComment(content string, ts time.Time) *types.Comment {
	return &types.Comment{Content: content, Timestamp: ts}
}

func TestHourDistribution(t *testing.T) {
	comments := []*types.Comment{
		timedComment("a", time.Date(2026, 8, 30, 9, 15, 0, 0, time.Local)),
		timedComment("b", time.Date(2026, 8, 30, 9, 45, 0, 0, time.Local)),
		timedComment("c", time.Date(2026, 8, 30, 23, 0, 0, 0, time.Local)),
		{Content: "no timestamp"},
	}

	hours := HourDistribution(comments)

	if hours[9] != 2 || hours[23] != 1 {
		t.Errorf("hours[9]=%d hours[23]=%d, want 2 and 1", hours[9], hours[23])
	}
	total := 0
	for _, n := range hours {
		total += n
	}
	if total != 3 {
		t.Errorf("total = %d, want 3 (unknown timestamps excluded)", total)
	}
}

func TestActivityDistribution(t *testing.T) {
	comments := []*types.Comment{
		timedComment("a", time.Date(2026, 8, 30, 2, 0, 0, 0, time.Local)),
		timedComment("b", time.Date(2026, 8, 30, 8, 0, 0, 0, time.Local)),
		timedComment("c", time.Date(2026, 8, 30, 14, 0, 0, 0, time.Local)),
		timedComment("d", time.Date(2026, 8, 30, 21, 0, 0, 0, time.Local)),
		timedComment("e", time.Date(2026, 8, 30, 22, 0, 0, 0, time.Local)),
	}

	counts := ActivityDistribution(comments)

	want := map[string]int{
		"深夜 (0-5点)":      1,
		"早晨 (6-9点)":      1,
		"工作时间 (10-17点)": 1,
		"晚间 (18-23点)":    2,
	}
	for _, lc := range counts {
		if lc.Count != want[lc.Label] {
			t.Errorf("%s = %d, want %d", lc.Label, lc.Count, want[lc.Label])
		}
	}
}

func TestDailyTopicTrend(t *testing.T) {
	day1 := time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	comments := []*types.Comment{
		timedComment("质量很好", day1),
		timedComment("价格太贵", day1),
		timedComment("质量不行要退货", day2),
		{Content: "质量 no timestamp"},
	}

	trend := DailyTopicTrend(comments, DefaultTopicCategories)
	if trend == nil {
		t.Fatal("expected a trend spanning two days")
	}
	if len(trend.Dates) != 2 || trend.Dates[0] != "2026-08-29" || trend.Dates[1] != "2026-08-30" {
		t.Fatalf("dates = %v", trend.Dates)
	}
	quality := trend.Series["质量问题"]
	if quality[0] != 1 || quality[1] != 1 {
		t.Errorf("质量问题 series = %v, want [1 1]", quality)
	}
	price := trend.Series["价格相关"]
	if price[0] != 1 || price[1] != 0 {
		t.Errorf("价格相关 series = %v, want [1 0]", price)
	}
}

func TestDailyTopicTrendSingleDay(t *testing.T) {
	day := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	comments := []*types.Comment{timedComment("质量很好", day)}
	if trend := DailyTopicTrend(comments, DefaultTopicCategories); trend != nil {
		t.Errorf("single-day data should yield nil, got %+v", trend)
	}
}

func TestRegionDistribution(t *testing.T) {
	comments := []*types.Comment{
		{Region: "广东"},
		{Region: "广东"},
		{Region: "浙江"},
		{Region: ""},
	}

	counts := RegionDistribution(comments, 15)

	if len(counts) != 2 {
		t.Fatalf("counts = %v, want 2 regions (empty skipped)", counts)
	}
	if counts[0].Label != "广东" || counts[0].Count != 2 {
		t.Errorf("top region = %+v, want 广东 x2", counts[0])
	}
}

func TestProvinceRollup(t *testing.T) {
	comments := []*types.Comment{
		{Region: "中国广东"},
		{Region: "广东"},
		{Region: "浙江杭州"},
		{Region: "海外"},
	}

	counts := ProvinceRollup(comments)

	want := map[string]int{"广东": 2, "浙江": 1}
	if len(counts) != 2 {
		t.Fatalf("counts = %v, want 2 provinces", counts)
	}
	for _, lc := range counts {
		if lc.Count != want[lc.Label] {
			t.Errorf("%s = %d, want %d", lc.Label, lc.Count, want[lc.Label])
		}
	}
}
