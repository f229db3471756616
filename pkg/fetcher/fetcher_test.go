package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const page = `<html><head><title>Clip - YouTube</title></head><body><div id="segments-container">hi</div></body></html>`

func TestGetHtml(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Language") == "" {
			t.Error("Accept-Language header not sent")
		}
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := NewFetcher()
	doc, err := f.GetHtml(context.Background(), srv.URL+"/watch?v=abc")
	if err != nil {
		t.Fatalf("GetHtml() error = %v", err)
	}
	title, _ := doc.Title(context.Background())
	if title != "Clip - YouTube" {
		t.Errorf("Title() = %q", title)
	}
	u, _ := doc.URL(context.Background())
	if u != srv.URL+"/watch?v=abc" {
		t.Errorf("URL() = %q", u)
	}

	if _, err := f.GetHtml(context.Background(), srv.URL+"/missing"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("GetHtml(missing) error = %v, want status 404", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		sourceURL  string
		wantPrefix string
	}{
		{"explicit URL", "https://www.youtube.com/watch?v=abc", "https://www.youtube.com/watch?v=abc"},
		{"file URL", "", "file://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := LoadFile(path, tt.sourceURL)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			u, _ := doc.URL(context.Background())
			if !strings.HasPrefix(u, tt.wantPrefix) {
				t.Errorf("URL() = %q, want prefix %q", u, tt.wantPrefix)
			}
		})
	}

	canonical := filepath.Join(t.TempDir(), "canonical.html")
	html := `<html><head><link rel="canonical" href="https://www.youtube.com/watch?v=xyz"></head><body></body></html>`
	if err := os.WriteFile(canonical, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadFile(canonical, "")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if u, _ := doc.URL(context.Background()); u != "https://www.youtube.com/watch?v=xyz" {
		t.Errorf("URL() = %q, want canonical link", u)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.html"), ""); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
}
