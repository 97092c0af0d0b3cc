package scraper

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"douyinsight/internal/types"
)

// commentListPattern matches the comment-list API endpoint the page polls
// while the comment panel is open.
const commentListPattern = "*/aweme/v1/web/comment/list/*"

// commentListResponse is the part of the API payload we keep.
type commentListResponse struct {
	Comments []types.RawNetworkComment `json:"comments"`
	HasMore  int                       `json:"has_more"`
	Total    int64                     `json:"total"`
}

// Capturer hijacks the page's comment-list requests and hands every
// captured raw comment to the sink.
type Capturer struct {
	router *rod.HijackRouter
	logger *slog.Logger
}

// StartCapture installs the hijack route and starts serving it. The sink
// is called from the router goroutine; it must be safe for that.
func StartCapture(page *rod.Page, sink func(types.RawNetworkComment), logger *slog.Logger) (*Capturer, error) {
	c := &Capturer{
		router: page.HijackRequests(),
		logger: logger.With("component", "capture"),
	}

	err := c.router.Add(commentListPattern, proto.NetworkResourceTypeXHR, func(ctx *rod.Hijack) {
		if err := ctx.LoadResponse(http.DefaultClient, true); err != nil {
			c.logger.Warn("load response failed", "url", ctx.Request.URL().String(), "error", err)
			return
		}

		body, err := decodeBody([]byte(ctx.Response.Body()))
		if err != nil {
			c.logger.Warn("decode body failed", "error", err)
			return
		}

		var resp commentListResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			c.logger.Warn("unmarshal comment list failed", "error", err)
			return
		}

		c.logger.Debug("comment list captured", "comments", len(resp.Comments), "has_more", resp.HasMore)
		for _, raw := range resp.Comments {
			sink(raw)
		}
	})
	if err != nil {
		return nil, &types.ScrapeError{Stage: "capture", Err: err}
	}

	go c.router.Run()
	return c, nil
}

// Stop removes the hijack route.
func (c *Capturer) Stop() error {
	return c.router.Stop()
}

// decodeBody returns the JSON payload, decompressing when the endpoint
// returns brotli or gzip despite the hijack. The sniff beats trusting the
// Content-Encoding header, which the CDN does not always set.
func decodeBody(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return body, nil
	}

	if len(body) > 2 && body[0] == 0x1f && body[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}

	return io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
}

// openCommentPanel clicks the comment entry so the page starts issuing
// comment-list requests. Some layouts open the panel automatically; a
// missing trigger is only an error when no comment item ever shows up.
func openCommentPanel(page *rod.Page, timeout time.Duration) error {
	if has, el, _ := page.Has(`[data-e2e="comment-icon"]`); has {
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return &types.ScrapeError{Stage: "capture", Err: err}
		}
	}

	err := page.Timeout(timeout).WaitElementsMoreThan(commentItemSelector, 0)
	if err != nil {
		return types.ErrNoCommentPanel
	}
	return nil
}

// expandRepliesJS clicks a bounded number of "展开N条回复" toggles so
// second-level replies render into the panel and the next extraction
// pass picks them up. Returns the number of toggles clicked.
var expandRepliesJS = strings.TrimSpace(`
() => {
	let clicked = 0;
	for (const el of document.querySelectorAll('div, span, button')) {
		if (clicked >= 10) break;
		const text = el.textContent.trim();
		if (/^展开(\d+条|更多)回复/.test(text) && !text.includes('已展开')) {
			try { el.click(); clicked++; } catch (e) {}
		}
	}
	return clicked;
}
`)

// scrollJS scrolls the comment panel when present, the window otherwise.
var scrollJS = strings.TrimSpace(`
() => {
	const panel = document.querySelector('[data-e2e="comment-list"]')
		|| document.querySelector('.comment-mainContent');
	if (panel) {
		panel.scrollTop = panel.scrollHeight;
	} else {
		window.scrollTo(0, document.body.scrollHeight);
	}
}
`)
