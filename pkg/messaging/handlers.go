package messaging

import (
	"context"
	"strings"

	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/page"
)

// MissingKeyMessage is the background side's answer to a SUMMARIZE without a key.
const MissingKeyMessage = "API Key is missing."

// Acquirer reads a transcript from a page. *acquire.Orchestrator implements it.
type Acquirer interface {
	Acquire(ctx context.Context, doc page.Document) models.TranscriptResult
}

// Completer sends a prompt to the chat model. *chat.Client implements it.
type Completer interface {
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

// ContentHandler answers GET_TRANSCRIPT by acquiring the transcript of doc.
func ContentHandler(acq Acquirer, doc page.Document) Handler {
	return func(ctx context.Context, _ models.Request) models.Response {
		return models.NewTranscriptResponse(acq.Acquire(ctx, doc))
	}
}

// BackgroundHandler answers SUMMARIZE by calling the chat model. A failed
// call is reported with the client's error text unchanged.
func BackgroundHandler(c Completer) Handler {
	return func(ctx context.Context, req models.Request) models.Response {
		if strings.TrimSpace(req.APIKey) == "" {
			return models.NewErrorResponse(MissingKeyMessage)
		}
		summary, err := c.Complete(ctx, req.APIKey, req.Prompt)
		if err != nil {
			return models.NewErrorResponse(err.Error())
		}
		return models.NewSummaryResponse(summary)
	}
}

// NewContentRouter returns a Router serving GET_TRANSCRIPT for doc.
func NewContentRouter(acq Acquirer, doc page.Document) *Router {
	r := NewRouter()
	r.Handle(models.ActionGetTranscript, ContentHandler(acq, doc))
	return r
}

// NewBackgroundRouter returns a Router serving SUMMARIZE.
func NewBackgroundRouter(c Completer) *Router {
	r := NewRouter()
	r.Handle(models.ActionSummarize, BackgroundHandler(c))
	return r
}
