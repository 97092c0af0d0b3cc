package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"douyinsight/internal/types"
)

// DOM extraction is the fallback collection path: no comment IDs, no
// author IDs, display-text counters. Selectors are probed in order
// because the platform ships several comment panel layouts.

var likeDigitsRe = regexp.MustCompile(`\d+(?:\.\d+)?\s*[万wW亿kK]?`)

// commentItemXPath is the last-resort selector when no CSS class matches.
const commentItemXPath = `//div[contains(@class, "comment-item")]`

// ExtractComments pulls every visible comment out of a rendered page
// snapshot.
func ExtractComments(pageHTML string) ([]types.RawDOMComment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, &types.ScrapeError{Stage: "extract", Err: err}
	}

	var raws []types.RawDOMComment
	items := doc.Find(commentItemSelector)
	if items.Length() == 0 {
		items = doc.Find(".comment-item, .comment-item-wrapper")
	}
	items.Each(func(_ int, sel *goquery.Selection) {
		if raw, ok := extractItem(sel); ok {
			raws = append(raws, raw)
		}
	})

	if len(raws) > 0 {
		return raws, nil
	}
	return extractByXPath(pageHTML)
}

func extractItem(sel *goquery.Selection) (types.RawDOMComment, bool) {
	raw := types.RawDOMComment{
		Nickname: firstText(sel, `[data-e2e="comment-item-username"]`, ".comment-item-username", ".nickname"),
		Content:  firstText(sel, `[data-e2e="comment-item-content"]`, ".comment-item-content", ".content"),
		LikeText: firstText(sel, `[data-e2e="comment-item-like"]`, ".comment-item-like", ".like-count"),
	}
	if raw.Content == "" {
		return raw, false
	}

	if id, ok := sel.Attr("data-id"); ok {
		raw.CommentID = id
	}
	if link, ok := sel.Find("a[href*='/user/']").First().Attr("href"); ok {
		raw.UserLink = link
	}

	// Meta line renders as "3天前 · 广东" or the two halves separately.
	meta := firstText(sel, `[data-e2e="comment-item-time"]`, ".comment-item-time", ".comment-time")
	raw.TimeLabel, raw.IPLabel = splitMeta(meta)
	if raw.IPLabel == "" {
		raw.IPLabel = firstText(sel, ".comment-item-region", ".ip-label")
	}

	raw.ReplyText = firstText(sel, ".comment-item-reply-count", ".reply-count")
	return raw, true
}

// extractByXPath re-parses the snapshot and walks a loose XPath match.
// Only fields recoverable without class names are filled.
func extractByXPath(pageHTML string) ([]types.RawDOMComment, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, &types.ScrapeError{Stage: "extract", Err: err}
	}

	nodes, err := htmlquery.QueryAll(doc, commentItemXPath)
	if err != nil {
		return nil, &types.ScrapeError{Stage: "extract", Err: err}
	}

	var raws []types.RawDOMComment
	for _, node := range nodes {
		text := strings.TrimSpace(htmlquery.InnerText(node))
		if text == "" {
			continue
		}
		raw := types.RawDOMComment{Content: text}
		if span, err := htmlquery.Query(node, `.//span[1]`); err == nil && span != nil {
			raw.Nickname = strings.TrimSpace(htmlquery.InnerText(span))
			raw.Content = strings.TrimSpace(strings.TrimPrefix(text, raw.Nickname))
		}
		if a, err := htmlquery.Query(node, `.//a[contains(@href, "/user/")]`); err == nil && a != nil {
			raw.UserLink = htmlquery.SelectAttr(a, "href")
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func firstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// splitMeta splits a "time · region" display line.
func splitMeta(meta string) (timeLabel, ipLabel string) {
	meta = strings.TrimSpace(meta)
	if meta == "" {
		return "", ""
	}
	for _, sep := range []string{"·", "•"} {
		if i := strings.Index(meta, sep); i >= 0 {
			return strings.TrimSpace(meta[:i]), strings.TrimSpace(meta[i+len(sep):])
		}
	}
	return meta, ""
}

// LikeDigits isolates the numeric part of a like-count display string,
// keeping the 万/亿 suffix for the count coercion downstream.
func LikeDigits(likeText string) string {
	return likeDigitsRe.FindString(likeText)
}
