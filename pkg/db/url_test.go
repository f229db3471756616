package db

import (
	"net/url"
	"testing"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertURL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name: "watch URL",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name: "watch URL with timestamp",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		},
		{
			name: "short link",
			url:  "https://youtu.be/dQw4w9WgXcQ",
		},
		{
			name:    "unparseable URL",
			url:     "://bad",
			wantErr: true,
		},
		{
			name: "duplicate URL returns same ID",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
	}

	var firstID int64
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urlID, err := db.InsertURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("InsertURL() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if urlID == 0 && !tt.wantErr {
				t.Error("InsertURL() returned 0 ID")
			}

			if i == 0 {
				firstID = urlID
			}
			if i == len(tests)-1 && urlID != firstID {
				t.Errorf("Duplicate URL got different ID: got %d, want %d", urlID, firstID)
			}
		})
	}
}

func TestInsertURL_ParsesComponents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	urlID, err := db.InsertURL("https://www.youtube.com/watch?v=abc123&list=PL1&t=10")
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}

	var scheme, domain, path, canonical, videoID string
	err = db.QueryRow(`
		SELECT scheme, domain, path, canonical_url, video_id
		FROM urls WHERE url_id = ?
	`, urlID).Scan(&scheme, &domain, &path, &canonical, &videoID)
	if err != nil {
		t.Fatalf("failed to query URL: %v", err)
	}

	if scheme != "https" {
		t.Errorf("scheme = %q, want %q", scheme, "https")
	}
	if domain != "www.youtube.com" {
		t.Errorf("domain = %q, want %q", domain, "www.youtube.com")
	}
	if path != "/watch" {
		t.Errorf("path = %q, want %q", path, "/watch")
	}
	if canonical != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("canonical_url = %q", canonical)
	}
	if videoID != "abc123" {
		t.Errorf("video_id = %q, want %q", videoID, "abc123")
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", "abc"},
		{"https://m.youtube.com/watch?v=abc&t=3", "abc"},
		{"https://youtu.be/abc", "abc"},
		{"https://www.youtube.com/shorts/abc/", "abc"},
		{"https://www.youtube.com/feed/subscriptions", ""},
		{"file:///tmp/page.html", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			if err != nil {
				t.Fatalf("url.Parse() error = %v", err)
			}
			if got := VideoID(u); got != tt.want {
				t.Errorf("VideoID() = %q, want %q", got, tt.want)
			}
		})
	}
}
