package domain

import "testing"

func TestArticleKeyPrefersGUID(t *testing.T) {
	t.Parallel()

	key := ArticleKey("tag:example.org,2026:1234", "https://example.org/story", "Title", "Body")
	if key != "tag:example.org,2026:1234" {
		t.Fatalf("GUID should win when present, got %q", key)
	}
}

func TestArticleKeyFallsBackToCanonicalLink(t *testing.T) {
	t.Parallel()

	variants := []string{
		"https://Example.org/news/attack/",
		"https://example.org/news/attack",
		"https://example.org/news/attack#comments",
	}

	first := ArticleKey("", variants[0], "Title", "Body")
	for _, link := range variants[1:] {
		if got := ArticleKey("", link, "Title", "Body"); got != first {
			t.Errorf("link %q should canonicalize to the same key: %q vs %q", link, got, first)
		}
	}

	if ArticleKey("", "https://example.org/a", "t", "b") == ArticleKey("", "https://example.org/b", "t", "b") {
		t.Error("distinct paths must produce distinct keys")
	}
}

func TestArticleKeyFallsBackToContentHash(t *testing.T) {
	t.Parallel()

	a := ArticleKey("", "", "Gunmen attack village", "Twelve residents were killed.")
	b := ArticleKey("", "", "Gunmen attack village", "Twelve residents were killed.")
	if a != b {
		t.Fatal("identical title+body must hash to the same key")
	}
	if len(a) != 64 {
		t.Fatalf("content hash should be hex sha256, got %d chars", len(a))
	}

	c := ArticleKey("", "", "Gunmen attack village", "A different body entirely.")
	if a == c {
		t.Error("different bodies must hash to different keys")
	}
}

func TestNearDuplicateKeyNormalizesTitleAndLink(t *testing.T) {
	t.Parallel()

	a := NearDuplicateKey("Gunmen  Kill 12 in   Borno", "https://example.org/2026/08/story/")
	b := NearDuplicateKey("gunmen kill 12 in borno", "https://EXAMPLE.org/2026/08/story")
	if a != b {
		t.Fatal("case and whitespace variants should collapse to the same near-duplicate key")
	}

	c := NearDuplicateKey("Gunmen Kill 12 in Borno", "https://mirror.example.net/2026/08/story")
	if a == c {
		t.Error("a different host must produce a different key")
	}
}
