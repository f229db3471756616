// Package fetcher loads watch-page snapshots from the network or disk.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/yt-summarizer/pkg/dom"
)

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{},
	}
}

// GetHtml fetches url and parses it into a snapshot.
func (f *Fetcher) GetHtml(ctx context.Context, url string) (*dom.Document, error) {
	bodyBytes, err := f.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	return dom.Parse(bytes.NewReader(bodyBytes), url)
}

func (f *Fetcher) GetHtmlBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The watch page serves a consent wall to clients without a language.
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, nil
}

// LoadFile parses a saved page; "-" reads stdin. sourceURL is reported as
// the page URL; when empty, the page's canonical link is used, then the
// file's own URL.
func LoadFile(path, sourceURL string) (*dom.Document, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer file.Close()
		r = file
	}

	doc, err := dom.Parse(r, sourceURL)
	if err != nil {
		return nil, err
	}
	if sourceURL != "" {
		return doc, nil
	}

	if canonical := CanonicalURL(doc.Goquery()); canonical != "" {
		doc.SetURL(canonical)
		return doc, nil
	}
	if path == "-" {
		return doc, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	doc.SetURL("file://" + filepath.ToSlash(abs))
	return doc, nil
}

// CanonicalURL returns the page's own absolute URL as declared in its head.
func CanonicalURL(doc *goquery.Document) string {
	for _, sel := range []string{`link[rel="canonical"]`, `meta[property="og:url"]`} {
		node := doc.Find(sel).First()
		u, ok := node.Attr("href")
		if !ok {
			u, ok = node.Attr("content")
		}
		if ok && strings.HasPrefix(u, "http") {
			return strings.TrimSpace(u)
		}
	}
	return ""
}
