package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// ArticleKey derives the stable dedup identifier for an article. Priority:
// feed-native GUID, then canonical link, then a content hash of title+body.
func ArticleKey(guid, link, title, body string) string {
	if guid = strings.TrimSpace(guid); guid != "" {
		return guid
	}
	if canonical := canonicalLink(link); canonical != "" {
		return canonical
	}
	return contentHash(title + "\n" + body)
}

// NearDuplicateKey hashes the normalized title plus the link's host and path,
// catching feed mirrors that republish the same story under a fresh GUID.
func NearDuplicateKey(title, link string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(title)), " ")
	if parsed, err := url.Parse(link); err == nil {
		normalized += "|" + strings.ToLower(parsed.Host) + strings.TrimRight(parsed.Path, "/")
	}
	return contentHash(normalized)
}

// canonicalLink normalizes a link for identity comparison: lowercased scheme
// and host, fragment removed, trailing slash stripped.
func canonicalLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return link
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	return parsed.String()
}

func contentHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
