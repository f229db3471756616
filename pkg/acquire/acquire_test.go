package acquire

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/dom"
	"github.com/dtnitsch/yt-summarizer/pkg/extractor"
	"github.com/dtnitsch/yt-summarizer/pkg/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchURL = "https://www.youtube.com/watch?v=abc"

const showButton = `button[aria-label="Show transcript"]`

// recorder counts waits without sleeping.
type recorder struct {
	stages []Stage
}

func (r *recorder) Settle(_ context.Context, _ page.Document, s Stage) {
	r.stages = append(r.stages, s)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrchestrator(s Settler, logger *slog.Logger) *Orchestrator {
	sel := models.DefaultSelectors()
	return New(extractor.New(sel), s, sel, logger)
}

func parse(t *testing.T, body string) *dom.Document {
	t.Helper()
	d, err := dom.ParseString(`<html><head><title>My Video - YouTube</title></head><body>`+body+`</body></html>`, watchURL)
	require.NoError(t, err)
	return d
}

func appendContainer(text string) dom.ClickFunc {
	return func(doc *goquery.Document, _ *goquery.Selection) {
		doc.Find("body").AppendHtml(`<div id="segments-container">` + text + `</div>`)
	}
}

func TestAcquire_ExistingTranscript(t *testing.T) {
	d := parse(t, `<div id="title"><h1>Heading</h1></div><div id="segments-container">Hello
		world   foo</div><div id="bottom-row"></div>`)
	clicks := 0
	d.OnClick("*", func(*goquery.Document, *goquery.Selection) { clicks++ })
	rec := &recorder{}

	got := newOrchestrator(rec, quietLogger()).Acquire(context.Background(), d)

	assert.Equal(t, models.TranscriptResult{
		Success:   true,
		Text:      "Hello world foo",
		Title:     "Heading",
		SourceURL: watchURL,
	}, got)
	assert.Zero(t, clicks, "fast path must not click")
	assert.Empty(t, rec.stages, "fast path must not wait")
}

func TestAcquire_HiddenPanelIsExpandedAndOpened(t *testing.T) {
	d := parse(t, `<div id="bottom-row">...more</div>
		<ytd-video-description-transcript-section-renderer hidden>
			<button aria-label="Show transcript">Show transcript</button>
		</ytd-video-description-transcript-section-renderer>`)
	d.OnClick("#bottom-row", func(doc *goquery.Document, _ *goquery.Selection) {
		doc.Find("ytd-video-description-transcript-section-renderer").RemoveAttr("hidden")
	})
	d.OnClick(showButton, appendContainer("<div>0:01</div><div>Hi</div>"))
	rec := &recorder{}

	got := newOrchestrator(rec, quietLogger()).Acquire(context.Background(), d)

	require.True(t, got.Success, "result = %+v", got)
	assert.Equal(t, "0:01 Hi", got.Text)
	assert.Equal(t, "My Video", got.Title)
	assert.Equal(t, watchURL, got.SourceURL)
	assert.Equal(t, []Stage{StageReveal, StageLoad}, rec.stages)
	assert.NoError(t, got.Validate())
}

func TestAcquire_PanelNotFound(t *testing.T) {
	d := parse(t, `<div id="bottom-row">...more</div>`)
	expanded := 0
	d.OnClick("#bottom-row", func(*goquery.Document, *goquery.Selection) { expanded++ })
	rec := &recorder{}

	got := newOrchestrator(rec, quietLogger()).Acquire(context.Background(), d)

	assert.Equal(t, models.TranscriptFailed(models.ErrPanelNotFound), got)
	assert.Equal(t, 1, expanded)
	assert.Equal(t, []Stage{StageReveal}, rec.stages)
}

func TestAcquire_NoExpandControl(t *testing.T) {
	d := parse(t, `<p>nothing here</p>`)
	rec := &recorder{}

	got := newOrchestrator(rec, quietLogger()).Acquire(context.Background(), d)

	assert.Equal(t, models.ErrPanelNotFound, got.Error)
	assert.Equal(t, []Stage{StageReveal}, rec.stages)
}

func TestAcquire_VisiblePanelSkipsExpansion(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		onShow     dom.ClickFunc
		wantReason models.ErrorReason
		wantText   string
	}{
		{
			name: "button loads transcript",
			body: `<ytd-video-description-transcript-section-renderer>
					<button aria-label="Show transcript">Show</button>
				</ytd-video-description-transcript-section-renderer>`,
			onShow:   appendContainer("loaded text"),
			wantText: "loaded text",
		},
		{
			name: "button renders nothing",
			body: `<ytd-video-description-transcript-section-renderer>
					<button aria-label="Show transcript">Show</button>
				</ytd-video-description-transcript-section-renderer>`,
			onShow:     func(*goquery.Document, *goquery.Selection) {},
			wantReason: models.ErrExtractionFailedAfterExpand,
		},
		{
			name:       "no show button",
			body:       `<ytd-video-description-transcript-section-renderer></ytd-video-description-transcript-section-renderer>`,
			wantReason: models.ErrExtractionFailedAfterExpand,
		},
		{
			name:       "container stays empty",
			body:       `<ytd-video-description-transcript-section-renderer><button aria-label="Show transcript"></button></ytd-video-description-transcript-section-renderer>`,
			onShow:     appendContainer("  \n  "),
			wantReason: models.ErrExtractionFailedAfterExpand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parse(t, `<div id="bottom-row"></div>`+tt.body)
			expanded := 0
			d.OnClick("#bottom-row", func(*goquery.Document, *goquery.Selection) { expanded++ })
			if tt.onShow != nil {
				d.OnClick(showButton, tt.onShow)
			}
			rec := &recorder{}

			got := newOrchestrator(rec, quietLogger()).Acquire(context.Background(), d)

			assert.Zero(t, expanded, "visible panel must not trigger expansion")
			assert.Equal(t, []Stage{StageLoad}, rec.stages)
			assert.Equal(t, tt.wantReason, got.Error)
			assert.Equal(t, tt.wantText, got.Text)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestAcquire_ResolvesOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d := parse(t, `<div id="bottom-row"></div>`)

	newOrchestrator(&recorder{}, logger).Acquire(context.Background(), d)

	assert.Equal(t, 1, strings.Count(buf.String(), "to=resolved"))
	assert.Contains(t, buf.String(), "to=expanding_description")
}

func TestAcquire_CancelledContextStillResolves(t *testing.T) {
	d := parse(t, `<div id="bottom-row"></div>`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	got := newOrchestrator(FixedDelay{Reveal: time.Hour, Load: time.Hour}, quietLogger()).Acquire(ctx, d)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, models.ErrPanelNotFound, got.Error)
}

// failingDoc has only an expand control, and clicking it errors.
type failingDoc struct{}

func (failingDoc) Query(_ context.Context, selector string) (page.Node, error) {
	if selector == "#bottom-row" {
		return failingNode{}, nil
	}
	return nil, page.ErrNotFound
}
func (failingDoc) Title(context.Context) (string, error) { return "", nil }
func (failingDoc) URL(context.Context) (string, error)   { return "", nil }

type failingNode struct{}

func (failingNode) Query(context.Context, string) (page.Node, error) { return nil, page.ErrNotFound }
func (failingNode) Text(context.Context) (string, error)            { return "", nil }
func (failingNode) Visible(context.Context) (bool, error)           { return true, nil }
func (failingNode) Click(context.Context) error                     { return errors.New("detached") }

func TestAcquire_ClickErrorIsNotFatal(t *testing.T) {
	got := newOrchestrator(&recorder{}, quietLogger()).Acquire(context.Background(), failingDoc{})
	assert.Equal(t, models.TranscriptFailed(models.ErrPanelNotFound), got)
}

func TestNewFromConfig_Policy(t *testing.T) {
	cfg := models.DefaultConfig()
	o := NewFromConfig(cfg, nil)
	assert.IsType(t, FixedDelay{}, o.settler)

	cfg.Acquire.Policy = models.PolicyPoll
	o = NewFromConfig(cfg, nil)
	poll, ok := o.settler.(*ReadyPoll)
	require.True(t, ok)
	assert.Equal(t, cfg.Acquire.PollInterval, poll.Interval)
	assert.Equal(t, cfg.Selectors.Panel, poll.Panel)
}
