// Package charts renders the analysis results as HTML chart files via
// go-echarts.
package charts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/components"

	"douyinsight/internal/analysis"
	"douyinsight/internal/types"
)

// Report bundles every chartable analysis result for one dataset.
type Report struct {
	Title     string
	Sentiment []analysis.LabelCount
	Topics    []analysis.LabelCount
	Tags      []analysis.LabelCount
	Styles    []analysis.LabelCount
	Regions   []analysis.LabelCount
	Provinces []analysis.LabelCount
	Hashtags  []analysis.LabelCount
	HotWords  []analysis.LabelCount
	Hours     [24]int
	Activity  []analysis.LabelCount
	Trend     *analysis.TopicTrend
	Influence []types.InfluenceRecord
	Graph     *analysis.ReplyGraph
}

// Renderer writes Report charts into an output directory.
type Renderer struct {
	dir    string
	logger *slog.Logger
}

func NewRenderer(dir string, logger *slog.Logger) *Renderer {
	return &Renderer{dir: dir, logger: logger.With("component", "charts")}
}

// Render writes all chart HTML files. Sections with no data are skipped
// rather than rendered empty.
func (r *Renderer) Render(report *Report) ([]string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create charts dir: %w", err)
	}

	var written []string
	write := func(name string, charters ...components.Charter) error {
		if len(charters) == 0 {
			return nil
		}
		path := filepath.Join(r.dir, name)
		if err := renderPage(path, charters...); err != nil {
			return err
		}
		r.logger.Info("chart written", "path", path)
		written = append(written, path)
		return nil
	}

	var overview []components.Charter
	if len(report.Sentiment) > 0 {
		overview = append(overview, sentimentPie(report.Sentiment))
	}
	if len(report.Topics) > 0 {
		overview = append(overview, topicPie(report.Topics))
	}
	if len(report.Regions) > 0 {
		overview = append(overview, regionRosePie(report.Regions))
	}
	if len(report.Provinces) > 0 {
		overview = append(overview, provinceBar(report.Provinces))
	}
	if len(report.Hashtags) > 0 {
		overview = append(overview, hashtagBar(report.Hashtags))
	}
	overview = append(overview, hourBar(report.Hours))
	if len(report.Activity) > 0 {
		overview = append(overview, activityPie(report.Activity))
	}
	if err := write("comment_overview.html", overview...); err != nil {
		return written, err
	}

	if len(report.HotWords) > 0 {
		if err := write("hot_words.html", hotWordCloud(report.HotWords), hotWordBar(report.HotWords)); err != nil {
			return written, err
		}
	}

	if len(report.Tags) > 0 || len(report.Styles) > 0 {
		var portrait []components.Charter
		if len(report.Tags) > 0 {
			portrait = append(portrait, contentTagBar(report.Tags))
		}
		if len(report.Styles) > 0 {
			portrait = append(portrait, languageStylePie(report.Styles))
		}
		if err := write("user_portrait.html", portrait...); err != nil {
			return written, err
		}
	}

	if report.Trend != nil {
		if err := write("topic_trend.html", topicTrendLine(report.Trend)); err != nil {
			return written, err
		}
	}

	if len(report.Influence) > 0 {
		if err := write("influence_ranking.html",
			influenceBar(report.Influence),
			commentCountBar(report.Influence),
			likesBar(report.Influence),
		); err != nil {
			return written, err
		}
	}

	if report.Graph != nil && len(report.Graph.Nodes) > 0 {
		if err := write("interaction_network.html", interactionGraph(report.Graph)); err != nil {
			return written, err
		}
	}

	return written, nil
}

func renderPage(path string, charters ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(charters...)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render chart page: %w", err)
	}
	return nil
}
