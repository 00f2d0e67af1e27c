package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/config"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

// maxFeedBytes caps how much of a feed response is read.
const maxFeedBytes = 8 << 20

// pubDateLayouts covers the date formats seen across Nigerian news feeds.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	GUID        string `xml:"guid"`
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Content     string `xml:"encoded"`
	PubDate     string `xml:"pubDate"`
}

// RSSFetcher pulls and parses RSS 2.0 feeds.
type RSSFetcher struct {
	client *http.Client
}

// NewRSSFetcher wires an HTTP client; a nil client gets a 20s timeout default.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &RSSFetcher{client: client}
}

// Name identifies the strategy inside the registry.
func (f *RSSFetcher) Name() string { return "rss" }

// Fetch downloads the feed and returns items published after the cutoff.
func (f *RSSFetcher) Fetch(ctx context.Context, feed config.FeedConfig, since time.Time) ([]domain.Article, error) {
	raw, contentType, err := f.download(ctx, feed.URL)
	if err != nil {
		return nil, err
	}

	declared := feed.Encoding
	if declared == "" {
		declared = charsetFromContentType(contentType)
	}
	text := DecodeText(raw, declared)

	// DecodeText already produced UTF-8, but the prolog may still declare the
	// original charset; accept any label rather than rejecting the document.
	decoder := xml.NewDecoder(strings.NewReader(text))
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var doc rssDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feed.Name, err)
	}

	var articles []domain.Article
	for _, item := range doc.Channel.Items {
		published := parsePubDate(item.PubDate)
		if !published.IsZero() && published.Before(since) {
			continue
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}
		title := StripMarkup(item.Title)
		body = StripMarkup(body)
		summary := StripMarkup(item.Description)

		articles = append(articles, domain.Article{
			ID:          domain.ArticleKey(item.GUID, item.Link, title, body),
			NearKey:     domain.NearDuplicateKey(title, item.Link),
			Title:       title,
			Body:        body,
			Summary:     summary,
			Link:        item.Link,
			Source:      feed.Name,
			PublishedAt: published,
		})
	}

	return articles, nil
}

func (f *RSSFetcher) download(ctx context.Context, feedURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "conflict-tracker/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("feed returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read feed body: %w", err)
	}

	return raw, resp.Header.Get("Content-Type"), nil
}

func parsePubDate(value string) time.Time {
	for _, layout := range pubDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
