package watcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"video.html", true},
		{"VIDEO.HTM", true},
		{"notes.txt", false},
		{"page.html.part", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPageFile(tt.path))
		})
	}
}

func TestWatcher_HandlesNewPages(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 4)
	w, err := New(dir, func(_ context.Context, path string) error {
		got <- filepath.Base(path)
		return nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)), 1, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the event loop a moment to start reading.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "video.html"), []byte("<html></html>"), 0o644))

	select {
	case name := <-got:
		assert.Equal(t, "video.html", name)
	case <-time.After(5 * time.Second):
		t.Fatal("handler not called for new page")
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled), "Start() error = %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
	assert.Empty(t, got, "non-page file must not be handled")
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), nil, nil, 0, 0)
	assert.Error(t, err)
}
