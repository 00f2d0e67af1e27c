package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/config"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

// HTMLFetcher scrapes article listings from sites without a usable feed.
// It expects listing pages built from <article> blocks with a linked heading,
// an optional <time datetime> stamp, and teaser paragraphs.
type HTMLFetcher struct {
	client *http.Client
}

// NewHTMLFetcher wires an HTTP client; a nil client gets a 20s timeout default.
func NewHTMLFetcher(client *http.Client) *HTMLFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &HTMLFetcher{client: client}
}

// Name identifies the strategy inside the registry.
func (f *HTMLFetcher) Name() string { return "html" }

// Fetch downloads the listing page and extracts article teasers published
// after the cutoff.
func (f *HTMLFetcher) Fetch(ctx context.Context, feed config.FeedConfig, since time.Time) ([]domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "conflict-tracker/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read listing body: %w", err)
	}

	declared := feed.Encoding
	if declared == "" {
		declared = charsetFromContentType(resp.Header.Get("Content-Type"))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(DecodeText(raw, declared)))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	var articles []domain.Article
	doc.Find("article").Each(func(_ int, block *goquery.Selection) {
		heading := block.Find("h1 a, h2 a, h3 a").First()
		title := strings.TrimSpace(heading.Text())
		link, _ := heading.Attr("href")
		if !strings.HasPrefix(link, "http") {
			link = strings.TrimRight(feed.URL, "/") + "/" + strings.TrimLeft(link, "/")
		}

		published := time.Time{}
		if stamp, ok := block.Find("time").First().Attr("datetime"); ok {
			if parsed, err := time.Parse(time.RFC3339, stamp); err == nil {
				published = parsed.UTC()
			}
		}
		if !published.IsZero() && published.Before(since) {
			return
		}

		var body strings.Builder
		block.Find("p").Each(func(_ int, p *goquery.Selection) {
			if body.Len() > 0 {
				body.WriteString(" ")
			}
			body.WriteString(strings.TrimSpace(p.Text()))
		})

		text := normalizeWhitespace(body.String())
		articles = append(articles, domain.Article{
			ID:          domain.ArticleKey("", link, title, text),
			NearKey:     domain.NearDuplicateKey(title, link),
			Title:       title,
			Body:        text,
			Summary:     text,
			Link:        link,
			Source:      feed.Name,
			PublishedAt: published,
		})
	})

	return articles, nil
}
