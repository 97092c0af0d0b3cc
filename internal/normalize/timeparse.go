package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// absoluteLayouts are tried in order against cleaned timestamp text.
var absoluteLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006年01月02日 15:04",
	"2006年1月2日 15:04",
	"2006年01月02日",
	"2006年1月2日",
}

// shortLayouts omit the year; the current year is assumed.
var shortLayouts = []string{
	"01-02 15:04",
	"01-02",
	"1月2日 15:04",
	"1月2日",
}

var relativeRe = regexp.MustCompile(`^(\d+)\s*(秒|分钟|小时|天|周|月|年)前$`)

// minEpochSeconds is the smallest digit-only value treated as unix
// seconds (2001-09-09). Shorter digit runs in DOM labels are years or
// stray counters, not epochs.
const minEpochSeconds = 1_000_000_000

// ParseTimestamp converts a source timestamp label into a time.Time.
// It accepts unix-epoch seconds, a set of absolute layouts, and the
// relative labels the comment section renders (刚刚, 3分钟前, 昨天 15:04,
// 2天前, 01-02, ...). ok is false when nothing matches; callers map that
// to the zero-time sentinel rather than an error.
func ParseTimestamp(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Unix epoch seconds.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < minEpochSeconds {
			return time.Time{}, false
		}
		return time.Unix(n, 0), true
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, true
		}
	}
	for _, layout := range shortLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t.AddDate(now.Year(), 0, 0), true
		}
	}

	return parseRelative(s, now)
}

func parseRelative(s string, now time.Time) (time.Time, bool) {
	switch s {
	case "刚刚", "刚才":
		return now, true
	case "昨天":
		return now.AddDate(0, 0, -1), true
	case "前天":
		return now.AddDate(0, 0, -2), true
	}

	// 昨天 15:04 / 前天 15:04
	dayPrefixes := []struct {
		label string
		days  int
	}{
		{"昨天", -1},
		{"前天", -2},
	}
	for _, p := range dayPrefixes {
		if rest, found := strings.CutPrefix(s, p.label); found {
			rest = strings.TrimSpace(rest)
			if clock, err := time.Parse("15:04", rest); err == nil {
				d := now.AddDate(0, 0, p.days)
				return time.Date(d.Year(), d.Month(), d.Day(),
					clock.Hour(), clock.Minute(), 0, 0, now.Location()), true
			}
		}
	}

	m := relativeRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	switch m[2] {
	case "秒":
		return now.Add(-time.Duration(n) * time.Second), true
	case "分钟":
		return now.Add(-time.Duration(n) * time.Minute), true
	case "小时":
		return now.Add(-time.Duration(n) * time.Hour), true
	case "天":
		return now.AddDate(0, 0, -n), true
	case "周":
		return now.AddDate(0, 0, -7*n), true
	case "月":
		return now.AddDate(0, -n, 0), true
	case "年":
		return now.AddDate(-n, 0, 0), true
	}
	return time.Time{}, false
}
