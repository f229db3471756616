// Package acquire drives a page until its transcript is readable and
// returns exactly one TranscriptResult per call.
package acquire

import (
	"context"
	"log/slog"

	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/extractor"
	"github.com/dtnitsch/yt-summarizer/pkg/page"
)

// Orchestrator runs the acquisition state machine:
//
//	probing_existing -> expanding_description -> opening_panel -> waiting_for_load -> resolved
//
// Each step after probing is skipped or entered depending on what the page
// already shows. At most two settle waits happen per acquisition.
type Orchestrator struct {
	extractor *extractor.Extractor
	settler   Settler
	sel       models.SelectorConfig
	logger    *slog.Logger
}

// New creates an Orchestrator. A nil settler waits nothing; a nil logger
// uses slog.Default.
func New(ext *extractor.Extractor, settler Settler, sel models.SelectorConfig, logger *slog.Logger) *Orchestrator {
	if settler == nil {
		settler = FixedDelay{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{extractor: ext, settler: settler, sel: sel, logger: logger}
}

// NewFromConfig wires an Orchestrator with the configured selectors and settle policy.
func NewFromConfig(cfg *models.Config, logger *slog.Logger) *Orchestrator {
	ext := extractor.New(cfg.Selectors)
	return New(ext, NewSettler(cfg, ext), cfg.Selectors, logger)
}

// Acquire reads the transcript from doc, opening the transcript panel if
// needed. It never panics on a missing element and always returns one
// result; a cancelled ctx only shortens the waits.
func (o *Orchestrator) Acquire(ctx context.Context, doc page.Document) models.TranscriptResult {
	a := &acquisition{o: o, doc: doc, state: models.StateIdle}
	return a.run(ctx)
}

type acquisition struct {
	o     *Orchestrator
	doc   page.Document
	state models.AcquisitionState
}

func (a *acquisition) run(ctx context.Context) models.TranscriptResult {
	o := a.o

	a.enter(models.StateProbingExisting)
	if text, ok := o.extractor.Extract(ctx, a.doc); ok {
		return a.succeed(ctx, text)
	}

	panel, found := page.Find(ctx, a.doc, o.sel.Panel)
	if !found || !visible(ctx, panel) {
		a.enter(models.StateExpandingDescription)
		a.click(ctx, a.doc, o.sel.ExpandControl)
		o.settler.Settle(ctx, a.doc, StageReveal)

		panel, found = page.Find(ctx, a.doc, o.sel.Panel)
		if !found {
			return a.fail(models.ErrPanelNotFound)
		}
	}

	a.enter(models.StateOpeningPanel)
	a.click(ctx, panel, o.sel.ShowTranscript)

	a.enter(models.StateWaitingForLoad)
	o.settler.Settle(ctx, a.doc, StageLoad)
	if text, ok := o.extractor.Extract(ctx, a.doc); ok {
		return a.succeed(ctx, text)
	}
	return a.fail(models.ErrExtractionFailedAfterExpand)
}

func (a *acquisition) enter(s models.AcquisitionState) {
	a.o.logger.Debug("acquisition state", "from", a.state.String(), "to", s.String())
	a.state = s
}

// click activates the first element under scope matching selector.
// A missing element or a failed click is not fatal.
func (a *acquisition) click(ctx context.Context, scope page.Querier, selector string) {
	n, ok := page.Find(ctx, scope, selector)
	if !ok {
		a.o.logger.Debug("click target not present", "selector", selector)
		return
	}
	if err := n.Click(ctx); err != nil {
		a.o.logger.Warn("click failed", "selector", selector, "error", err)
	}
}

func (a *acquisition) succeed(ctx context.Context, text string) models.TranscriptResult {
	title := a.o.extractor.ExtractTitle(ctx, a.doc)
	url, err := a.doc.URL(ctx)
	if err != nil {
		a.o.logger.Warn("failed to read page URL", "error", err)
	}
	a.enter(models.StateResolved)
	a.o.logger.Info("transcript acquired", "chars", len(text), "title", title)
	return models.TranscriptSucceeded(text, title, url)
}

func (a *acquisition) fail(reason models.ErrorReason) models.TranscriptResult {
	a.enter(models.StateResolved)
	a.o.logger.Info("transcript acquisition failed", "reason", string(reason))
	return models.TranscriptFailed(reason)
}

func visible(ctx context.Context, n page.Node) bool {
	v, err := n.Visible(ctx)
	return err == nil && v
}
