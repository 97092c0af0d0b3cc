package storage

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"douyinsight/internal/types"
)

// csvHeader is the fixed column order of the comment CSV. Downstream
// analysis files depend on these exact names and this exact order.
var csvHeader = []string{
	"评论ID", "昵称", "用户ID", "用户sec_id", "头像", "地区", "时间",
	"评论", "点赞数", "回复数", "回复给用户", "回复给用户ID",
	"是否置顶", "是否热评", "包含话题", "提及用户",
}

// utf8BOM makes spreadsheet tools detect the encoding of the Chinese
// headers correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const csvTimeLayout = "2006-01-02 15:04:05"

// Boolean serialization expected by the existing analysis files.
const (
	boolYes = "是"
	boolNo  = "否"
)

// CSVStorage streams comments into a CSV file. Rows are flushed per
// batch so a cancelled run still leaves a valid file containing every
// fully processed record.
type CSVStorage struct {
	path   string
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewCSVStorage creates the output file, writes the BOM and the header
// row. The header is written even when no rows ever follow.
func NewCSVStorage(outputPath string, logger *slog.Logger) (*CSVStorage, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	if _, err := f.Write(utf8BOM); err != nil {
		f.Close()
		return nil, fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write CSV header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVStorage{
		path:   outputPath,
		file:   f,
		writer: w,
		logger: logger.With("component", "csv_storage"),
	}, nil
}

func (s *CSVStorage) Name() string { return "csv" }

// Path returns the file this storage writes to.
func (s *CSVStorage) Path() string { return s.path }

func (s *CSVStorage) Store(comments []*types.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range comments {
		if err := s.writer.Write(commentRow(c)); err != nil {
			return &types.StorageError{Backend: s.Name(), Err: err}
		}
		s.count++
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}
	return nil
}

func (s *CSVStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer.Flush()
	s.logger.Info("CSV written", "path", s.path, "rows", s.count)
	return s.file.Close()
}

func commentRow(c *types.Comment) []string {
	ts := ""
	if c.HasTimestamp() {
		ts = c.Timestamp.Format(csvTimeLayout)
	}
	return []string{
		c.ID,
		c.AuthorName,
		c.AuthorID,
		c.AuthorSecID,
		c.AvatarURL,
		c.Region,
		ts,
		c.Content,
		fmt.Sprintf("%d", c.LikeCount),
		fmt.Sprintf("%d", c.ReplyCount),
		c.ReplyToName,
		c.ReplyToAuthorID,
		yesNo(c.Pinned),
		yesNo(c.Featured),
		strings.Join(c.Hashtags, ","),
		strings.Join(c.MentionedIDs, ","),
	}
}

func yesNo(b bool) string {
	if b {
		return boolYes
	}
	return boolNo
}

var slugForbidden = regexp.MustCompile(`[<>:"/\\|?*\s]+`)

// OutputPath builds the conventional CSV path
// <dir>/<slug>_<YYYYMMDD_HHMMSS>.csv, with the slug sanitized for the
// filesystem and truncated to 50 runes.
func OutputPath(dir, slug string, now time.Time) string {
	slug = slugForbidden.ReplaceAllString(strings.TrimSpace(slug), "_")
	if slug == "" {
		slug = "comments"
	}
	if runes := []rune(slug); len(runes) > 50 {
		slug = string(runes[:50])
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", slug, now.Format("20060102_150405")))
}
