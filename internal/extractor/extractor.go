package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/linklens/linklens/internal/model"
)

// ErrParse is returned when a document cannot be parsed at all.
// Partial or malformed markup does not trigger it; the underlying tokenizer
// recovers from almost anything, so this marks truly unusable input.
var ErrParse = errors.New("extractor: document cannot be parsed")

// noindexToken is the robots directive that marks a page non-indexable.
const noindexToken = "noindex"

// Extract parses body and returns the page's SEO signals and links.
// It must only be called for a 200 response. pageURL is the fetched URL,
// used to resolve relative hrefs.
func Extract(body []byte, pageURL string) (*model.ExtractedPage, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid page URL %q: %v", ErrParse, pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	page := &model.ExtractedPage{
		Title:         strings.TrimSpace(doc.Find("title").First().Text()),
		Indexable:     isIndexable(doc),
		CanonicalHref: canonicalHref(doc),
		Links:         extractLinks(doc, base),
	}
	return page, nil
}

// isIndexable returns false iff a robots meta tag's content contains the
// "noindex" token. Tag name and content are matched case-insensitively.
func isIndexable(doc *goquery.Document) bool {
	indexable := true
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "robots") {
			return true
		}
		content, _ := s.Attr("content")
		if strings.Contains(strings.ToLower(content), noindexToken) {
			indexable = false
			return false
		}
		return true
	})
	return indexable
}

// canonicalHref returns the trimmed href of the first link rel="canonical"
// element, or "" when absent. The rel attribute is a whitespace-separated
// token list, so "canonical alternate" still counts.
func canonicalHref(doc *goquery.Document) string {
	var href string
	doc.Find("link[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		for _, token := range strings.Fields(rel) {
			if strings.EqualFold(token, "canonical") {
				href, _ = s.Attr("href")
				href = strings.TrimSpace(href)
				return false
			}
		}
		return true
	})
	return href
}

// extractLinks collects every anchor with a resolvable href, in document
// order. Anchors that cannot be resolved are skipped individually.
func extractLinks(doc *goquery.Document, base *url.URL) []model.LinkRecord {
	links := make([]model.LinkRecord, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved := resolveHref(base, href)
		if resolved == "" {
			return
		}

		rel, _ := s.Attr("rel")
		links = append(links, model.LinkRecord{
			AbsoluteHref: resolved,
			AnchorText:   strings.TrimSpace(s.Text()),
			RelTokens:    relTokens(rel),
		})
	})
	return links
}

// resolveHref resolves href against the page URL.
// Non-navigational schemes and bare fragments return "".
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" {
		return ""
	}

	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// relTokens splits a rel attribute into a lowercased token set,
// preserving first-occurrence order.
func relTokens(rel string) []string {
	fields := strings.Fields(strings.ToLower(rel))
	if len(fields) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// CanonicalIsSelf reports whether canonical points at pageURL itself.
// Trailing slashes are ignored; scheme and host compare case-insensitively.
// When either side fails to parse, it falls back to a raw string compare
// after trailing-slash stripping.
func CanonicalIsSelf(canonical, pageURL string) bool {
	if canonical == "" {
		return false
	}

	cu, errC := url.Parse(strings.TrimSpace(canonical))
	pu, errP := url.Parse(strings.TrimSpace(pageURL))
	if errC != nil || errP != nil {
		return strings.TrimSuffix(canonical, "/") == strings.TrimSuffix(pageURL, "/")
	}

	if !strings.EqualFold(cu.Scheme, pu.Scheme) || !strings.EqualFold(cu.Host, pu.Host) {
		return false
	}

	cPath := strings.TrimSuffix(cu.EscapedPath(), "/")
	pPath := strings.TrimSuffix(pu.EscapedPath(), "/")
	return cPath == pPath && cu.RawQuery == pu.RawQuery
}
