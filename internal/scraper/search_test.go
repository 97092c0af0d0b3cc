package scraper

import (
	"strings"
	"testing"
)

func TestSearchURL(t *testing.T) {
	got := SearchURL("风景 大海")
	if !strings.HasPrefix(got, "https://www.douyin.com/search/") {
		t.Errorf("SearchURL prefix wrong: %q", got)
	}
	if strings.Contains(got, " ") {
		t.Errorf("keyword not escaped: %q", got)
	}
	if !strings.Contains(got, "type=video") {
		t.Errorf("missing video filter: %q", got)
	}
}

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://www.douyin.com/video/7353500880198536457", "7353500880198536457"},
		{"https://www.douyin.com/video/7353500880198536457?from=search", "7353500880198536457"},
		{"https://www.douyin.com/video/abc123", "abc123"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := videoIDFromURL(tt.in); got != tt.want {
			t.Errorf("videoIDFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const searchResultsHTML = `<!DOCTYPE html>
<html><body>
<ul>
<li class="search-result-card">
  <a href="/video/7353500880198536457?from=search"></a>
  <p class="video-title">海边日落实拍</p>
  <p class="video-author">旅行者小王</p>
</li>
<li class="search-result-card">
  <a href="//www.douyin.com/video/7353500880198536458"></a>
  <p class="video-title">大海航拍合集</p>
  <p class="video-author">无人机爱好者</p>
</li>
<li class="search-result-card">
  <p class="video-title">没有链接的卡片</p>
</li>
</ul>
</body></html>`

func TestExtractVideoResults(t *testing.T) {
	results, err := ExtractVideoResults(searchResultsHTML, 10)
	if err != nil {
		t.Fatalf("ExtractVideoResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (card without link dropped)", len(results))
	}

	first := results[0]
	if first.Title != "海边日落实拍" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Author != "旅行者小王" {
		t.Errorf("Author = %q", first.Author)
	}
	if first.URL != "https://www.douyin.com/video/7353500880198536457?from=search" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.VideoID != "7353500880198536457" {
		t.Errorf("VideoID = %q", first.VideoID)
	}

	second := results[1]
	if second.URL != "https://www.douyin.com/video/7353500880198536458" {
		t.Errorf("protocol-relative URL not resolved: %q", second.URL)
	}
}

func TestExtractVideoResultsMaxTruncates(t *testing.T) {
	results, err := ExtractVideoResults(searchResultsHTML, 1)
	if err != nil {
		t.Fatalf("ExtractVideoResults: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestExtractVideoResultsAnchorFallback(t *testing.T) {
	html := `<html><body>
<a href="/video/7100000000000000001">第一条视频</a>
<a href="/video/7100000000000000001">第一条视频（重复）</a>
<a href="/video/7100000000000000002">第二条视频</a>
<a href="/user/MS4wLjAB">某个用户</a>
</body></html>`

	results, err := ExtractVideoResults(html, 10)
	if err != nil {
		t.Fatalf("ExtractVideoResults: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (duplicate link collapsed)", len(results))
	}
	if results[0].VideoID != "7100000000000000001" || results[1].VideoID != "7100000000000000002" {
		t.Errorf("VideoIDs = %q, %q", results[0].VideoID, results[1].VideoID)
	}
	if results[0].Title != "第一条视频" {
		t.Errorf("Title = %q", results[0].Title)
	}
}
