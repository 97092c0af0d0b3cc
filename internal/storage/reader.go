package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"douyinsight/internal/types"
)

// ReadCSV loads a comment CSV written by CSVStorage (or the earlier
// versions of this tool) back into canonical records. Unknown columns
// are ignored; missing columns default like the normalizer does.
func ReadCSV(path string) ([]*types.Comment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, types.ErrMissingHeader
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["评论ID"]; !ok {
		return nil, types.ErrMissingHeader
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	comments := make([]*types.Comment, 0, len(rows)-1)
	for _, row := range rows[1:] {
		c := &types.Comment{
			ID:              field(row, "评论ID"),
			AuthorName:      field(row, "昵称"),
			AuthorID:        field(row, "用户ID"),
			AuthorSecID:     field(row, "用户sec_id"),
			AvatarURL:       field(row, "头像"),
			Region:          field(row, "地区"),
			Content:         field(row, "评论"),
			ReplyToName:     field(row, "回复给用户"),
			ReplyToAuthorID: field(row, "回复给用户ID"),
			Pinned:          field(row, "是否置顶") == boolYes,
			Featured:        field(row, "是否热评") == boolYes,
		}
		c.LikeCount = parseCount(field(row, "点赞数"))
		c.ReplyCount = parseCount(field(row, "回复数"))
		if ts := strings.TrimSpace(field(row, "时间")); ts != "" {
			if t, err := time.ParseInLocation(csvTimeLayout, ts, time.Local); err == nil {
				c.Timestamp = t
			}
		}
		if tags := field(row, "包含话题"); tags != "" {
			c.Hashtags = strings.Split(tags, ",")
		}
		if ids := field(row, "提及用户"); ids != "" {
			c.MentionedIDs = strings.Split(ids, ",")
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// KnownAuthors extracts the (author ID, display name) pairs from a
// loaded table, in first-seen order.
func KnownAuthors(comments []*types.Comment) []types.AuthorRef {
	seen := make(map[string]struct{}, len(comments))
	var authors []types.AuthorRef
	for _, c := range comments {
		key := c.AuthorKey()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		authors = append(authors, types.AuthorRef{ID: key, Name: c.AuthorName})
	}
	return authors
}

// FindLatestCSV returns the most recently modified .csv file under dir.
func FindLatestCSV(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read comments dir: %w", err)
	}

	var latest string
	var latestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = filepath.Join(dir, e.Name())
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return "", types.ErrNoCSVFound
	}
	return latest, nil
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
