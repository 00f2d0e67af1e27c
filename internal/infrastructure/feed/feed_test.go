package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/config"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
)

const longBody = "Gunmen stormed the community in the early hours and residents said several houses were burnt before soldiers arrived. The attackers fled toward the forest and a search operation is ongoing."

func TestDecodeTextUTF8Passthrough(t *testing.T) {
	t.Parallel()

	text := "Maiduguri — attack repelled"
	if got := DecodeText([]byte(text), ""); got != text {
		t.Fatalf("valid UTF-8 should pass through, got %q", got)
	}
}

func TestDecodeTextWindows1252Fallback(t *testing.T) {
	t.Parallel()

	// 0x93/0x94 are curly quotes in Windows-1252 and invalid as bare UTF-8.
	raw := []byte{'s', 'a', 'i', 'd', ' ', 0x93, 'n', 'o', 0x94}
	got := DecodeText(raw, "")
	if !strings.Contains(got, "“no”") {
		t.Fatalf("mislabeled Windows-1252 should decode via fallback, got %q", got)
	}
}

func TestDecodeTextDeclaredCharset(t *testing.T) {
	t.Parallel()

	raw := []byte{'c', 'a', 'f', 0xE9}
	if got := DecodeText(raw, "iso-8859-1"); got != "café" {
		t.Fatalf("declared charset should be honored, got %q", got)
	}
}

func TestCharsetFromContentType(t *testing.T) {
	t.Parallel()

	if got := charsetFromContentType("application/rss+xml; charset=windows-1252"); got != "windows-1252" {
		t.Errorf("got %q", got)
	}
	if got := charsetFromContentType("text/xml"); got != "" {
		t.Errorf("missing charset should yield empty, got %q", got)
	}
}

func TestStripMarkup(t *testing.T) {
	t.Parallel()

	in := `<p>Gunmen   attacked <b>Konduga</b>.</p><script>alert(1)</script><style>p{}</style>`
	if got := StripMarkup(in); got != "Gunmen attacked Konduga." {
		t.Fatalf("got %q", got)
	}
	if got := StripMarkup("plain   text  here"); got != "plain text here" {
		t.Fatalf("plain text should only be whitespace-normalized, got %q", got)
	}
}

func rssPayload(now time.Time) string {
	recent := now.Add(-2 * time.Hour).Format(time.RFC1123Z)
	stale := now.Add(-100 * time.Hour).Format(time.RFC1123Z)
	return fmt.Sprintf(`<?xml version="1.0"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
<item>
  <guid>guid-recent</guid>
  <title>Gunmen &lt;b&gt;attack&lt;/b&gt; Konduga</title>
  <link>https://example.org/konduga</link>
  <description>Short teaser.</description>
  <content:encoded><![CDATA[<p>%s</p>]]></content:encoded>
  <pubDate>%s</pubDate>
</item>
<item>
  <guid>guid-stale</guid>
  <title>Old story</title>
  <link>https://example.org/old</link>
  <description><![CDATA[%s]]></description>
  <pubDate>%s</pubDate>
</item>
</channel>
</rss>`, longBody, recent, longBody, stale)
}

func TestRSSFetcherFetch(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		fmt.Fprint(w, rssPayload(now))
	}))
	defer server.Close()

	fetcher := NewRSSFetcher(server.Client())
	articles, err := fetcher.Fetch(context.Background(), config.FeedConfig{Name: "test-feed", URL: server.URL, Kind: "rss"}, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("items before the cutoff should be dropped, got %d articles", len(articles))
	}

	article := articles[0]
	if article.ID != "guid-recent" {
		t.Errorf("GUID should become the article ID, got %q", article.ID)
	}
	if article.Title != "Gunmen attack Konduga" {
		t.Errorf("title should be markup-stripped, got %q", article.Title)
	}
	if article.Body != longBody {
		t.Errorf("content:encoded should win over description, got %q", article.Body)
	}
	if article.Summary != "Short teaser." {
		t.Errorf("summary should come from the description, got %q", article.Summary)
	}
	if article.Source != "test-feed" {
		t.Errorf("got source %q", article.Source)
	}
	if article.NearKey == "" {
		t.Error("near-duplicate key should be populated")
	}
}

func TestRSSFetcherDeclaredLegacyCharset(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	recent := now.Add(-time.Hour).Format(time.RFC1123Z)

	// Raw ISO-8859-1 bytes with the charset declared in the XML prolog; the
	// 0xE9 byte is é and is invalid as bare UTF-8.
	payload := `<?xml version="1.0" encoding="ISO-8859-1"?>
<rss version="2.0">
<channel>
<item>
  <guid>guid-legacy</guid>
  <title>Attack on Caf` + string([]byte{0xE9}) + ` Biu repelled</title>
  <link>https://example.org/biu</link>
  <description><![CDATA[` + longBody + `]]></description>
  <pubDate>` + recent + `</pubDate>
</item>
</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=iso-8859-1")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	fetcher := NewRSSFetcher(server.Client())
	articles, err := fetcher.Fetch(context.Background(), config.FeedConfig{Name: "legacy", URL: server.URL, Kind: "rss"}, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("a feed with a declared legacy charset must still parse: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("want 1 article, got %d", len(articles))
	}
	if !strings.Contains(articles[0].Title, "Café Biu") {
		t.Errorf("legacy bytes should decode before parsing, got title %q", articles[0].Title)
	}
}

func TestRSSFetcherRejectsNon200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := NewRSSFetcher(server.Client())
	if _, err := fetcher.Fetch(context.Background(), config.FeedConfig{Name: "broken", URL: server.URL, Kind: "rss"}, time.Time{}); err == nil {
		t.Fatal("non-200 response should be an error")
	}
}

type stubStrategy struct {
	name     string
	articles []domain.Article
	err      error
}

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Fetch(context.Context, config.FeedConfig, time.Time) ([]domain.Article, error) {
	return s.articles, s.err
}

func TestReaderDropsUnusableArticles(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(stubStrategy{name: "stub", articles: []domain.Article{
		{ID: "ok", Title: "Usable", Body: longBody},
		{ID: "titleless", Title: "", Body: longBody},
		{ID: "stub-body", Title: "Too short", Body: "brief"},
	}})

	reader := NewReader(registry, []config.FeedConfig{{Name: "only", Kind: "stub"}}, 0, nil)
	articles, err := reader.FetchSince(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "ok" {
		t.Fatalf("titleless and under-length articles should be dropped, got %v", articles)
	}
}

func TestReaderToleratesFailingFeed(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(stubStrategy{name: "broken", err: fmt.Errorf("connection refused")})
	registry.Register(stubStrategy{name: "good", articles: []domain.Article{{ID: "a", Title: "Story", Body: longBody}}})

	feeds := []config.FeedConfig{
		{Name: "bad-feed", Kind: "broken", Priority: 1},
		{Name: "good-feed", Kind: "good", Priority: 2},
		{Name: "unregistered", Kind: "atom", Priority: 3},
	}

	reader := NewReader(registry, feeds, 0, nil)
	articles, err := reader.FetchSince(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("one bad feed must not fail the read: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "a" {
		t.Fatalf("expected only the good feed's article, got %v", articles)
	}
}
