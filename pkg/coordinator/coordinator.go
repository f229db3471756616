// Package coordinator runs one summarize request end to end: read the
// transcript, build the prompt, call the model, copy the result.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/clipboard"
	"github.com/dtnitsch/yt-summarizer/pkg/language"
	"github.com/dtnitsch/yt-summarizer/pkg/messaging"
	"github.com/dtnitsch/yt-summarizer/pkg/templates"
)

// Status lines.
const (
	StatusGettingTranscript = "Getting transcript..."
	StatusInjecting         = "Injecting script..."
	StatusCopied            = "Summary copied to clipboard!"
	StatusBackgroundFailed  = "Error contacting background service."
)

// Level classifies a status line.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Reporter shows status lines to the user.
type Reporter interface {
	Report(level Level, msg string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(level Level, msg string)

func (f ReporterFunc) Report(level Level, msg string) { f(level, msg) }

// SettingsStore persists the user's choices. *db.DB implements it.
type SettingsStore interface {
	SaveSettings(s models.Settings) error
}

// History records finished runs. *db.DB implements it.
type History interface {
	RecordRun(run models.Run) (int64, error)
}

// Options wires a Coordinator. Content and Background are required; every
// other field has a usable zero value.
type Options struct {
	Content       messaging.Channel
	Injector      messaging.Injector
	Background    messaging.Channel
	Templates     *templates.Store
	Sink          clipboard.Sink
	Settings      SettingsStore
	History       History
	Detector      language.Detector
	Reporter      Reporter
	Logger        *slog.Logger
	ReinjectDelay time.Duration
	// ProviderName appears in the "Sending to ..." status line.
	ProviderName string
	// SuccessMessage replaces StatusCopied, for sinks that are not the clipboard.
	SuccessMessage string
	// Source tags history rows with the call site, e.g. "summarize" or "watch".
	Source string
}

// Outcome is what a run produced. Summary is set whenever the model
// answered, even if copying it failed.
type Outcome struct {
	Result   models.TranscriptResult
	Summary  string
	Language string
	RunID    int64
}

type Coordinator struct {
	opts Options
	busy atomic.Bool
}

func New(opts Options) (*Coordinator, error) {
	if opts.Content == nil || opts.Background == nil {
		return nil, fmt.Errorf("coordinator: content and background channels are required")
	}
	if opts.Templates == nil {
		store, err := templates.New()
		if err != nil {
			return nil, err
		}
		opts.Templates = store
	}
	if opts.Sink == nil {
		opts.Sink = clipboard.NewCommandSink(nil)
	}
	if opts.Detector == nil {
		opts.Detector = language.None{}
	}
	if opts.Reporter == nil {
		opts.Reporter = ReporterFunc(func(Level, string) {})
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ProviderName == "" {
		opts.ProviderName = "DeepSeek"
	}
	if opts.SuccessMessage == "" {
		opts.SuccessMessage = StatusCopied
	}
	return &Coordinator{opts: opts}, nil
}

// Busy reports whether a run is in progress.
func (c *Coordinator) Busy() bool {
	return c.busy.Load()
}

// Run performs one summarize request. Only one run may be in flight; a
// concurrent call returns ErrBusy and changes nothing. Failures are
// reported to the Reporter and returned as *Error.
func (c *Coordinator) Run(ctx context.Context, s models.Settings) (Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer c.busy.Store(false)

	apiKey := strings.TrimSpace(s.APIKey)
	if apiKey == "" {
		err := &Error{Reason: models.ErrMissingAPIKey}
		c.opts.Reporter.Report(LevelError, err.Error())
		return Outcome{}, err
	}

	logger := c.opts.Logger.With("template", s.TemplateID, "source", c.opts.Source)

	if c.opts.Settings != nil {
		if err := c.opts.Settings.SaveSettings(models.Settings{APIKey: apiKey, TemplateID: s.TemplateID}); err != nil {
			logger.Warn("failed to save settings", "error", err)
		}
	}

	tmpl := c.opts.Templates.Resolve(s.TemplateID)
	if tmpl.ID != s.TemplateID {
		logger.Info("template not found, using default", "requested", s.TemplateID, "using", tmpl.ID)
	}
	run := models.Run{TemplateID: tmpl.ID, Source: c.opts.Source}
	var out Outcome

	c.opts.Reporter.Report(LevelInfo, StatusGettingTranscript)
	result, err := c.acquire(ctx)
	out.Result = result
	if err != nil {
		return c.finish(logger, &run, out, err)
	}
	run.URL = result.SourceURL
	run.Title = result.Title
	run.TranscriptChars = utf8.RuneCountInString(result.Text)

	out.Language = c.opts.Detector.Detect(result.Text)
	run.Language = out.Language
	logger.Info("transcript received", "chars", run.TranscriptChars, "title", result.Title, "language", out.Language)

	prompt := templates.BuildPrompt(tmpl.InstructionText, result.Text)
	c.opts.Reporter.Report(LevelInfo, fmt.Sprintf("Transcript extracted (%d chars). Sending to %s...", run.TranscriptChars, c.opts.ProviderName))

	resp, err := c.opts.Background.Send(ctx, models.Request{
		Action: models.ActionSummarize,
		APIKey: apiKey,
		Prompt: prompt,
	})
	if err != nil {
		return c.finish(logger, &run, out, &Error{Reason: models.ErrMessagingChannelFailure, Message: StatusBackgroundFailed, Err: err})
	}
	if !resp.Success {
		return c.finish(logger, &run, out, &Error{Reason: models.ErrAPIError, Message: "API Error: " + resp.Error})
	}
	out.Summary = resp.Summary
	run.SummaryChars = utf8.RuneCountInString(resp.Summary)

	if err := c.opts.Sink.Write(ctx, resp.Summary); err != nil {
		return c.finish(logger, &run, out, &Error{Reason: models.ErrClipboardWriteFailure, Err: err})
	}

	run.Success = true
	return c.finish(logger, &run, out, nil)
}

// acquire asks the page side for the transcript, reinjecting once if it
// does not answer.
func (c *Coordinator) acquire(ctx context.Context) (models.TranscriptResult, error) {
	var inj messaging.Injector
	if c.opts.Injector != nil {
		inj = messaging.InjectFunc(func(ctx context.Context) error {
			c.opts.Reporter.Report(LevelInfo, StatusInjecting)
			return c.opts.Injector.Inject(ctx)
		})
	}

	resp, err := messaging.SendWithReinject(ctx, c.opts.Content, inj, c.opts.ReinjectDelay,
		models.Request{Action: models.ActionGetTranscript})
	if err != nil {
		return models.TranscriptResult{}, &Error{Reason: models.ErrMessagingChannelFailure, Err: err}
	}

	if resp.Transcript != nil && resp.Transcript.Success {
		return *resp.Transcript, nil
	}

	reason := models.ErrorReason(resp.Error)
	if resp.Transcript != nil && resp.Transcript.Error != "" {
		reason = resp.Transcript.Error
	}
	if !reason.Known() {
		return models.TranscriptFailed(models.ErrExtractionFailedAfterExpand), &Error{
			Reason:  models.ErrExtractionFailedAfterExpand,
			Message: "Failed to get transcript.",
		}
	}
	return models.TranscriptFailed(reason), &Error{Reason: reason}
}

func (c *Coordinator) finish(logger *slog.Logger, run *models.Run, out Outcome, err error) (Outcome, error) {
	if err != nil {
		run.ErrorKind = ReasonOf(err)
		run.ErrorMessage = err.Error()
		c.opts.Reporter.Report(LevelError, err.Error())
		logger.Error("run failed", "reason", string(run.ErrorKind), "error", err)
	} else {
		c.opts.Reporter.Report(LevelSuccess, c.opts.SuccessMessage)
		logger.Info("run finished", "summary_chars", run.SummaryChars)
	}

	if c.opts.History != nil {
		id, herr := c.opts.History.RecordRun(*run)
		if herr != nil {
			logger.Warn("failed to record run", "error", herr)
		}
		out.RunID = id
	}
	return out, err
}
