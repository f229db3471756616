package summarize

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/acquire"
	"github.com/dtnitsch/yt-summarizer/pkg/dom"
	"github.com/dtnitsch/yt-summarizer/pkg/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const savedPage = `<html><head><title>Talk - YouTube</title></head><body>
<div id="segments-container"><div>0:01 hello</div></div>
</body></html>`

func TestSnapshotSource(t *testing.T) {
	doc, err := dom.ParseString(savedPage, "https://www.youtube.com/watch?v=talk")
	require.NoError(t, err)

	cfg := models.DefaultConfig()
	orch := acquire.NewFromConfig(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	src := snapshotSource(orch, doc)
	defer src.close()

	req := models.Request{Action: models.ActionGetTranscript}
	resp, err := src.content.Send(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Transcript)
	assert.True(t, resp.Transcript.Success)
	assert.Equal(t, "Talk", resp.Transcript.Title)

	// A lost handler comes back after one reinjection.
	router := src.content.(*messaging.Router)
	router.Remove(models.ActionGetTranscript)
	resp, err = messaging.SendWithReinject(context.Background(), src.content, src.injector, 0, req)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
