package acquire

import (
	"context"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPoll(bound time.Duration) *ReadyPoll {
	sel := models.DefaultSelectors()
	return &ReadyPoll{
		Reveal:    bound,
		Load:      bound,
		Interval:  5 * time.Millisecond,
		Panel:     sel.Panel,
		Extractor: extractor.New(sel),
	}
}

func TestReadyPoll_ReturnsEarlyWhenReady(t *testing.T) {
	d := parse(t, `<div id="bottom-row"></div>`)
	d.OnClick("#bottom-row", func(doc *goquery.Document, _ *goquery.Selection) {
		doc.Find("body").AppendHtml(`<ytd-video-description-transcript-section-renderer>
			<button aria-label="Show transcript"></button>
		</ytd-video-description-transcript-section-renderer>`)
	})
	d.OnClick(showButton, appendContainer("fast"))

	start := time.Now()
	got := newOrchestrator(newPoll(10*time.Second), quietLogger()).Acquire(context.Background(), d)

	require.True(t, got.Success, "result = %+v", got)
	assert.Equal(t, "fast", got.Text)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestReadyPoll_BoundedWhenNothingRenders(t *testing.T) {
	d := parse(t, `<div id="bottom-row"></div>`)
	bound := 30 * time.Millisecond

	start := time.Now()
	got := newOrchestrator(newPoll(bound), quietLogger()).Acquire(context.Background(), d)
	elapsed := time.Since(start)

	assert.Equal(t, models.ErrPanelNotFound, got.Error)
	assert.GreaterOrEqual(t, elapsed, bound)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestFixedDelay_WaitsPerStage(t *testing.T) {
	f := FixedDelay{Reveal: 20 * time.Millisecond, Load: 0}
	d := parse(t, ``)

	start := time.Now()
	f.Settle(context.Background(), d, StageLoad)
	assert.Less(t, time.Since(start), 15*time.Millisecond)

	start = time.Now()
	f.Settle(context.Background(), d, StageReveal)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "reveal", StageReveal.String())
	assert.Equal(t, "load", StageLoad.String())
}
