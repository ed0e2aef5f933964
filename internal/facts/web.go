// Package facts fetches short "Title: snippet" fact lines that ground
// deck generation, from web search results or local files.
package facts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const searchURL = "https://duckduckgo.com/html/"

// WebProvider scrapes DuckDuckGo's HTML results page.
type WebProvider struct {
	httpClient *http.Client
}

func NewWebProvider() *WebProvider {
	return &WebProvider{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch returns up to limit fact lines for a topic. Zero results is not
// an error; callers treat any error as an empty fact list.
func (p *WebProvider) Fetch(ctx context.Context, topic string, limit int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL+"?q="+url.QueryEscape(topic), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search status %d", resp.StatusCode)
	}

	return parseResults(resp.Body, limit)
}

// parseResults walks the result markup for title/snippet anchor pairs.
func parseResults(r io.Reader, limit int) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	var results []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if limit > 0 && len(results) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") {
			title := anchorText(n, "result__a")
			snippet := anchorText(n, "result__snippet")
			if title != "" && snippet != "" {
				results = append(results, title+": "+snippet)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// anchorText finds the first <a> with the given class below n and
// returns its trimmed text content.
func anchorText(n *html.Node, class string) string {
	var found *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, class) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(n)
	if found == nil {
		return ""
	}
	return textContent(found)
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
