package ingest

import (
	"testing"

	"credcheck/types"
)

func TestNormalizeTitleAndURLAndHash(t *testing.T) {
	cases := []struct {
		name          string
		url           string
		title         string
		wantNormURL   string
		wantNormTitle string
	}{
		{"simple", "https://example.com/path", "Hello World", "https://example.com/path", "hello world"},
		{"utm and fragment", "https://example.com/path?utm_source=feed#section", "  Hello   World  ", "https://example.com/path", "hello world"},
		{"uppercase host", "HTTP://Example.COM/", "TiTle", "http://example.com", "title"},
		{"tracking params", "https://example.com/?fbclid=XYZ&gclid=ABC&utm_medium=1", "T", "https://example.com", "t"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			nu := normalizeURL(c.url)
			if nu != c.wantNormURL {
				t.Fatalf("normalizeURL(%q) = %q; want %q", c.url, nu, c.wantNormURL)
			}
			nt := normalizeTitle(c.title)
			if nt != c.wantNormTitle {
				t.Fatalf("normalizeTitle(%q) = %q; want %q", c.title, nt, c.wantNormTitle)
			}

			h := NormalizeAndHash(types.NewsRecord{Link: c.url, Title: c.title})
			if h == "" {
				t.Fatalf("NormalizeAndHash returned empty hash")
			}
		})
	}
}

func TestNormalizeAndHashStability(t *testing.T) {
	a := types.NewsRecord{Link: "https://example.com/path?utm_source=x", Title: "Big  Story"}
	b := types.NewsRecord{Link: "https://example.com/path", Title: "big story"}

	if NormalizeAndHash(a) != NormalizeAndHash(b) {
		t.Fatal("normalized variants of the same item must hash identically")
	}

	c := types.NewsRecord{Link: "https://example.com/other", Title: "big story"}
	if NormalizeAndHash(a) == NormalizeAndHash(c) {
		t.Fatal("different links must not collide")
	}
}
