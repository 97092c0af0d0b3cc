package analysis

import (
	"sort"
	"strings"

	"douyinsight/internal/types"
)

// provinces used for the geographic roll-up, preserved from the
// original tool.
var provinces = []string{
	"北京", "上海", "广东", "江苏", "浙江", "四川", "湖北", "湖南",
	"河南", "河北", "山东", "山西", "陕西", "安徽", "福建", "江西",
	"广西", "云南", "贵州", "辽宁", "吉林", "黑龙江", "内蒙古", "新疆",
	"宁夏", "甘肃", "青海", "西藏", "天津", "重庆", "海南",
}

// RegionDistribution tallies region labels and returns the topN, most
// frequent first. Empty labels are skipped.
func RegionDistribution(comments []*types.Comment, topN int) []LabelCount {
	freq := make(map[string]int)
	var order []string
	for _, c := range comments {
		region := strings.TrimSpace(c.Region)
		if region == "" {
			continue
		}
		if freq[region] == 0 {
			order = append(order, region)
		}
		freq[region]++
	}
	return topCounts(order, freq, topN)
}

// ProvinceRollup maps region labels onto the first province whose name
// appears in the label, yielding the per-province comment counts used by
// the geographic chart. Labels matching no province are dropped.
func ProvinceRollup(comments []*types.Comment) []LabelCount {
	freq := make(map[string]int)
	for _, c := range comments {
		for _, p := range provinces {
			if strings.Contains(c.Region, p) {
				freq[p]++
				break
			}
		}
	}
	counts := make([]LabelCount, 0, len(freq))
	for _, p := range provinces {
		if n := freq[p]; n > 0 {
			counts = append(counts, LabelCount{Label: p, Count: n})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
