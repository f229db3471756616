package acquire

import (
	"context"
	"time"

	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/extractor"
	"github.com/dtnitsch/yt-summarizer/pkg/page"
)

// Stage names the two points at which an acquisition waits for the page.
type Stage int

const (
	// StageReveal follows the click on the description expander.
	StageReveal Stage = iota
	// StageLoad follows the click on the show-transcript button.
	StageLoad
)

func (s Stage) String() string {
	if s == StageReveal {
		return "reveal"
	}
	return "load"
}

// Settler waits for the page to finish rendering after a click. It must
// return once its bound for the stage has passed or ctx is done.
type Settler interface {
	Settle(ctx context.Context, doc page.Document, stage Stage)
}

// FixedDelay waits a fixed time per stage.
type FixedDelay struct {
	Reveal time.Duration
	Load   time.Duration
}

func (f FixedDelay) Settle(ctx context.Context, _ page.Document, stage Stage) {
	d := f.Load
	if stage == StageReveal {
		d = f.Reveal
	}
	sleep(ctx, d)
}

// ReadyPoll re-checks the page every Interval and stops waiting as soon as
// the stage's target is present: the panel after reveal, non-empty
// transcript text after load. Reveal and Load bound each wait.
type ReadyPoll struct {
	Reveal    time.Duration
	Load      time.Duration
	Interval  time.Duration
	Panel     string
	Extractor *extractor.Extractor
}

// NewReadyPoll builds a ReadyPoll from config.
func NewReadyPoll(cfg *models.Config, ext *extractor.Extractor) *ReadyPoll {
	return &ReadyPoll{
		Reveal:    cfg.Acquire.RevealDelay,
		Load:      cfg.Acquire.LoadDelay,
		Interval:  cfg.Acquire.PollInterval,
		Panel:     cfg.Selectors.Panel,
		Extractor: ext,
	}
}

func (p *ReadyPoll) Settle(ctx context.Context, doc page.Document, stage Stage) {
	bound := p.Load
	if stage == StageReveal {
		bound = p.Reveal
	}
	ctx, cancel := context.WithTimeout(ctx, bound)
	defer cancel()

	interval := p.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !p.ready(ctx, doc, stage) {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *ReadyPoll) ready(ctx context.Context, doc page.Document, stage Stage) bool {
	if stage == StageReveal {
		_, ok := page.Find(ctx, doc, p.Panel)
		return ok
	}
	_, ok := p.Extractor.Extract(ctx, doc)
	return ok
}

// NewSettler picks the settle policy named in config.
func NewSettler(cfg *models.Config, ext *extractor.Extractor) Settler {
	if cfg.Acquire.Policy == models.PolicyPoll {
		return NewReadyPoll(cfg, ext)
	}
	return FixedDelay{Reveal: cfg.Acquire.RevealDelay, Load: cfg.Acquire.LoadDelay}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
