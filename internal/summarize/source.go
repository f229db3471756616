package summarize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/yt-summarizer/internal/common"
	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/acquire"
	"github.com/dtnitsch/yt-summarizer/pkg/browser"
	"github.com/dtnitsch/yt-summarizer/pkg/dom"
	"github.com/dtnitsch/yt-summarizer/pkg/fetcher"
	"github.com/dtnitsch/yt-summarizer/pkg/messaging"
	"github.com/urfave/cli/v2"
)

// pageSource is the page side of a run: where GET_TRANSCRIPT goes and how
// to re-attach when it goes unanswered.
type pageSource struct {
	content  messaging.Channel
	injector messaging.Injector
	close    func()
}

// openSource picks the page from the flags. --file reads a saved page,
// --fetch downloads --url without a browser, and anything else attaches
// to Chrome, either over --cdp or by launching it at --url.
func openSource(ctx context.Context, c *cli.Context, orch *acquire.Orchestrator, logger *slog.Logger) (*pageSource, error) {
	rawURL := c.String("url")
	if rawURL != "" {
		var err error
		if rawURL, err = common.WatchURL(rawURL); err != nil {
			return nil, err
		}
	}

	switch {
	case c.IsSet("file"):
		doc, err := fetcher.LoadFile(c.String("file"), rawURL)
		if err != nil {
			return nil, err
		}
		logger.Debug("using saved page", "path", c.String("file"))
		return snapshotSource(orch, doc), nil

	case c.Bool("fetch"):
		if rawURL == "" {
			return nil, fmt.Errorf("--fetch needs --url")
		}
		doc, err := fetcher.NewFetcher().GetHtml(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		logger.Debug("fetched page", "url", rawURL)
		return snapshotSource(orch, doc), nil
	}

	if c.String("cdp") == "" && rawURL == "" {
		return nil, fmt.Errorf("one of --file, --url or --cdp is required")
	}
	tab, err := browser.Connect(ctx, browser.Options{
		CDP:      c.String("cdp"),
		Match:    c.String("tab"),
		URL:      rawURL,
		Headless: c.Bool("headless"),
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to attach to browser: %w", err)
	}
	return &pageSource{content: tab.Channel(orch), injector: tab, close: tab.Close}, nil
}

// snapshotSource serves a parsed page through a router. Reinjection
// registers the handler again.
func snapshotSource(orch *acquire.Orchestrator, doc *dom.Document) *pageSource {
	router := messaging.NewContentRouter(orch, doc)
	return &pageSource{
		content: router,
		injector: messaging.InjectFunc(func(context.Context) error {
			router.Handle(models.ActionGetTranscript, messaging.ContentHandler(orch, doc))
			return nil
		}),
		close: func() {},
	}
}
