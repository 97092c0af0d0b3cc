package charts

import (
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"douyinsight/internal/analysis"
	"douyinsight/internal/types"
)

const rankingTop = 20

func pieData(counts []analysis.LabelCount) []opts.PieData {
	data := make([]opts.PieData, 0, len(counts))
	for _, lc := range counts {
		data = append(data, opts.PieData{Name: lc.Label, Value: lc.Count})
	}
	return data
}

func newPie(title, series string, counts []analysis.LabelCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "vertical", Left: "left"}),
	)
	pie.AddSeries(series, pieData(counts)).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
	)
	return pie
}

func sentimentPie(counts []analysis.LabelCount) *charts.Pie {
	return newPie("评论情感分布", "情感", counts)
}

func topicPie(counts []analysis.LabelCount) *charts.Pie {
	return newPie("评论主题分布", "主题", counts)
}

func activityPie(counts []analysis.LabelCount) *charts.Pie {
	return newPie("评论活跃时段", "时段", counts)
}

func languageStylePie(counts []analysis.LabelCount) *charts.Pie {
	return newPie("语言风格分布", "风格", counts)
}

// regionRosePie is the rose-style region pie of the original report.
func regionRosePie(counts []analysis.LabelCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "评论地区分布"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("地区", pieData(counts)).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
		charts.WithPieChartOpts(opts.PieChart{
			Radius:   []string{"30%", "75%"},
			RoseType: "radius",
		}),
	)
	return pie
}

func newCountBar(title, series string, counts []analysis.LabelCount) *charts.Bar {
	labels := make([]string, 0, len(counts))
	values := make([]opts.BarData, 0, len(counts))
	for _, lc := range counts {
		labels = append(labels, lc.Label)
		values = append(values, opts.BarData{Value: lc.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
	)
	bar.SetXAxis(labels).AddSeries(series, values)
	return bar
}

func provinceBar(counts []analysis.LabelCount) *charts.Bar {
	return newCountBar("省份评论数", "评论数", counts)
}

func hashtagBar(counts []analysis.LabelCount) *charts.Bar {
	return newCountBar("热门话题标签", "出现次数", counts)
}

func contentTagBar(counts []analysis.LabelCount) *charts.Bar {
	return newCountBar("评论内容标签", "评论数", counts)
}

func hotWordBar(counts []analysis.LabelCount) *charts.Bar {
	return newCountBar("评论热词", "出现次数", counts)
}

func hourBar(hours [24]int) *charts.Bar {
	labels := make([]string, 24)
	values := make([]opts.BarData, 24)
	for h := 0; h < 24; h++ {
		labels[h] = fmt.Sprintf("%d点", h)
		values[h] = opts.BarData{Value: hours[h]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "评论时间分布"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	bar.SetXAxis(labels).AddSeries("评论数", values)
	return bar
}

func hotWordCloud(counts []analysis.LabelCount) *charts.WordCloud {
	data := make([]opts.WordCloudData, 0, len(counts))
	for _, lc := range counts {
		data = append(data, opts.WordCloudData{Name: lc.Label, Value: lc.Count})
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "评论词云"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	wc.AddSeries("热词", data).SetSeriesOptions(
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			SizeRange: []float32{15, 80},
			Shape:     "circle",
		}),
	)
	return wc
}

func topicTrendLine(trend *analysis.TopicTrend) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "主题日趋势"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	names := make([]string, 0, len(trend.Series))
	for name := range trend.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	line.SetXAxis(trend.Dates)
	for _, name := range names {
		series := trend.Series[name]
		values := make([]opts.LineData, len(series))
		for i, v := range series {
			values[i] = opts.LineData{Value: v}
		}
		line.AddSeries(name, values, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}
	return line
}

func topInfluence(records []types.InfluenceRecord) []types.InfluenceRecord {
	if len(records) > rankingTop {
		return records[:rankingTop]
	}
	return records
}

func influenceBar(records []types.InfluenceRecord) *charts.Bar {
	records = topInfluence(records)
	labels := make([]string, 0, len(records))
	values := make([]opts.BarData, 0, len(records))
	for _, rec := range records {
		labels = append(labels, rec.AuthorName)
		values = append(values, opts.BarData{Value: fmt.Sprintf("%.1f", rec.Score)})
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "用户影响力排名"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
	)
	bar.SetXAxis(labels).AddSeries("影响力", values)
	return bar
}

func commentCountBar(records []types.InfluenceRecord) *charts.Bar {
	records = topInfluence(records)
	counts := make([]analysis.LabelCount, 0, len(records))
	for _, rec := range records {
		counts = append(counts, analysis.LabelCount{Label: rec.AuthorName, Count: rec.CommentCount})
	}
	return newCountBar("活跃用户排名", "评论数", counts)
}

func likesBar(records []types.InfluenceRecord) *charts.Bar {
	records = topInfluence(records)
	counts := make([]analysis.LabelCount, 0, len(records))
	for _, rec := range records {
		counts = append(counts, analysis.LabelCount{Label: rec.AuthorName, Count: rec.TotalLikes})
	}
	return newCountBar("获赞用户排名", "获赞数", counts)
}
