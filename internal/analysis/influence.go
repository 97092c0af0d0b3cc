package analysis

import (
	"sort"

	"douyinsight/internal/types"
)

// Influence score weights: comment frequency and total likes dominate,
// average comment length contributes the rest. Preserved from the
// original ranking definition.
const (
	weightCommentCount = 0.4
	weightTotalLikes   = 0.4
	weightAvgLength    = 0.2
)

// ScoreInfluence aggregates per-author engagement metrics and ranks
// authors by the composite 0-100 influence score, descending. Ties keep
// first-seen author order. This ranking is deliberately distinct from
// the reply-graph centrality flag.
func ScoreInfluence(comments []*types.Comment) []types.InfluenceRecord {
	index := make(map[string]int)
	records := make([]types.InfluenceRecord, 0)
	totalLen := make([]int, 0)

	for _, c := range comments {
		key := c.AuthorKey()
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(records)
			index[key] = i
			records = append(records, types.InfluenceRecord{
				AuthorID:   key,
				AuthorName: c.AuthorName,
			})
			totalLen = append(totalLen, 0)
		}
		records[i].CommentCount++
		records[i].TotalLikes += c.LikeCount
		totalLen[i] += c.ContentLength()
	}

	var maxCount, maxLikes int
	var maxAvgLen float64
	for i := range records {
		records[i].AvgContentLength = float64(totalLen[i]) / float64(records[i].CommentCount)
		if records[i].CommentCount > maxCount {
			maxCount = records[i].CommentCount
		}
		if records[i].TotalLikes > maxLikes {
			maxLikes = records[i].TotalLikes
		}
		if records[i].AvgContentLength > maxAvgLen {
			maxAvgLen = records[i].AvgContentLength
		}
	}

	for i := range records {
		records[i].Score = 100 * (weightCommentCount*normalizeBy(float64(records[i].CommentCount), float64(maxCount)) +
			weightTotalLikes*normalizeBy(float64(records[i].TotalLikes), float64(maxLikes)) +
			weightAvgLength*normalizeBy(records[i].AvgContentLength, maxAvgLen))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	return records
}

// normalizeBy divides by the metric's maximum, yielding 0 when the
// maximum itself is 0.
func normalizeBy(v, max float64) float64 {
	if max == 0 {
		return 0
	}
	return v / max
}
