package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"douyinsight/internal/types"
)

// VideoResult is one entry of a keyword search over the video catalog.
type VideoResult struct {
	Title   string
	Author  string
	URL     string
	VideoID string
}

const (
	searchBaseURL        = "https://www.douyin.com/search/"
	searchResultSelector = `li[class*="search-result"], li[class*="video-card"]`
	searchScrollStep     = 800
)

// SearchURL builds the video-search page URL for a keyword.
func SearchURL(keyword string) string {
	return searchBaseURL + url.PathEscape(keyword) + "?aid=0&source=normal_search&type=video"
}

// Searcher runs keyword searches through the automated browser and
// extracts the result list, so a video can be picked for a crawl.
type Searcher struct {
	browser *Browser
	logger  *slog.Logger

	// scrollDelay between result-loading scrolls, overridable in tests.
	scrollDelay time.Duration
}

func NewSearcher(browser *Browser, logger *slog.Logger) *Searcher {
	return &Searcher{
		browser:     browser,
		logger:      logger.With("component", "search"),
		scrollDelay: 1500 * time.Millisecond,
	}
}

// Search opens the search page for the keyword, scrolls until enough
// results have loaded, and returns up to maxVideos entries.
func (s *Searcher) Search(ctx context.Context, keyword string, maxVideos int) ([]VideoResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &types.ScrapeError{Stage: "search", Err: types.ErrEmptyKeyword}
	}
	if maxVideos <= 0 {
		maxVideos = 10
	}

	page, err := s.browser.OpenPage(ctx, SearchURL(keyword))
	if err != nil {
		return nil, err
	}
	defer page.Close()

	s.logger.Info("searching videos", "keyword", keyword, "max", maxVideos)

	// More scroll rounds than strictly needed; lazy loading drops some.
	rounds := maxVideos/3 + 3
	for i := 0; i < rounds; i++ {
		if _, err := page.Eval(searchScrollJS); err != nil {
			s.logger.Warn("search scroll failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.scrollDelay):
		}
	}

	pageHTML, err := page.HTML()
	if err != nil {
		return nil, &types.ScrapeError{Stage: "search", Err: err}
	}

	results, err := ExtractVideoResults(pageHTML, maxVideos)
	if err != nil {
		return nil, err
	}
	s.logger.Info("search complete", "keyword", keyword, "results", len(results))
	return results, nil
}

// ExtractVideoResults parses the search result list out of a page
// snapshot. Result cards are probed first; bare video links are the
// fallback when the card layout is unrecognized.
func ExtractVideoResults(pageHTML string, maxVideos int) ([]VideoResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, &types.ScrapeError{Stage: "search", Err: err}
	}

	var results []VideoResult
	seen := make(map[string]struct{})
	add := func(r VideoResult) {
		if r.URL == "" {
			return
		}
		if _, dup := seen[r.URL]; dup {
			return
		}
		seen[r.URL] = struct{}{}
		results = append(results, r)
	}

	cards := doc.Find(searchResultSelector)
	cards.Each(func(_ int, sel *goquery.Selection) {
		if maxVideos > 0 && len(results) >= maxVideos {
			return
		}
		href, ok := sel.Find(`a[href*="/video/"]`).First().Attr("href")
		if !ok {
			return
		}
		videoURL := absoluteVideoURL(href)
		add(VideoResult{
			Title:   firstText(sel, `p[class*="title"]`, `div[class*="title"]`, "p"),
			Author:  firstText(sel, `p[class*="author"]`, `div[class*="author"]`),
			URL:     videoURL,
			VideoID: videoIDFromURL(videoURL),
		})
	})

	if len(results) > 0 {
		return results, nil
	}

	doc.Find(`a[href*="/video/"]`).Each(func(_ int, sel *goquery.Selection) {
		if maxVideos > 0 && len(results) >= maxVideos {
			return
		}
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		videoURL := absoluteVideoURL(href)
		add(VideoResult{
			Title:   strings.TrimSpace(sel.Text()),
			URL:     videoURL,
			VideoID: videoIDFromURL(videoURL),
		})
	})
	return results, nil
}

// absoluteVideoURL resolves protocol-relative and path-only hrefs
// against the platform origin.
func absoluteVideoURL(href string) string {
	switch {
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return "https://www.douyin.com" + href
	default:
		return href
	}
}

// videoIDFromURL pulls the video ID out of a result link: the first
// all-digit path segment, or the last segment with the query stripped.
func videoIDFromURL(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for _, seg := range segments {
		if seg != "" && isDigits(seg) {
			return seg
		}
	}
	if len(segments) > 0 {
		return segments[len(segments)-1]
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

var searchScrollJS = fmt.Sprintf(`() => { window.scrollBy(0, %d); }`, searchScrollStep)
