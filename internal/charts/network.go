package charts

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"douyinsight/internal/analysis"
)

// Node sizing for the interaction network.
const (
	minNodeSize = 10.0
	maxNodeSize = 40.0
)

// interactionGraph renders the reply graph as a force-layout chart. Node
// size scales with centrality; opinion leaders get their own category so
// the legend singles them out.
func interactionGraph(g *analysis.ReplyGraph) *charts.Graph {
	categories := []*opts.GraphCategory{
		{Name: "评论用户"},
		{Name: "意见领袖"},
	}

	maxCentrality := 0.0
	for _, n := range g.Nodes {
		if c := g.Centrality[n]; c > maxCentrality {
			maxCentrality = c
		}
	}

	// echarts requires node names to be unique; two authors can share a
	// display name, so collide back to the author key.
	label := make(map[string]string, len(g.Nodes))
	used := make(map[string]struct{}, len(g.Nodes))
	for _, key := range g.Nodes {
		name := g.Names[key]
		if name == "" {
			name = key
		}
		if _, taken := used[name]; taken {
			name = key
		}
		used[name] = struct{}{}
		label[key] = name
	}

	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, key := range g.Nodes {
		size := float32(minNodeSize)
		if maxCentrality > 0 {
			size = float32(minNodeSize + (maxNodeSize-minNodeSize)*g.Centrality[key]/maxCentrality)
		}
		category := 0
		if g.HighInfluence(key) {
			category = 1
		}
		nodes = append(nodes, opts.GraphNode{
			Name:       label[key],
			SymbolSize: size,
			Category:   category,
		})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, e := range g.Edges {
		links = append(links, opts.GraphLink{Source: label[e.From], Target: label[e.To]})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "90vh"}),
		charts.WithTitleOpts(opts.Title{Title: "评论互动网络"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	graph.AddSeries("互动", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:             "force",
			Force:              &opts.GraphForce{Repulsion: 1000, EdgeLength: 50},
			Roam:               opts.Bool(true),
			Categories:         categories,
			FocusNodeAdjacency: opts.Bool(true),
			Draggable:          opts.Bool(true),
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return graph
}
