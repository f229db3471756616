package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/dtnitsch/yt-summarizer/internal/common"
	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/acquire"
	"github.com/dtnitsch/yt-summarizer/pkg/chat"
	"github.com/dtnitsch/yt-summarizer/pkg/clipboard"
	"github.com/dtnitsch/yt-summarizer/pkg/coordinator"
	"github.com/dtnitsch/yt-summarizer/pkg/fetcher"
	"github.com/dtnitsch/yt-summarizer/pkg/language"
	"github.com/dtnitsch/yt-summarizer/pkg/messaging"
	"github.com/dtnitsch/yt-summarizer/pkg/templates"
	"github.com/dtnitsch/yt-summarizer/pkg/watcher"
	"github.com/urfave/cli/v2"
)

// SummarySuffix is appended to a page's base name to name its summary file.
const SummarySuffix = ".summary.md"

// SummaryPath returns where the summary of a saved page is written.
func SummaryPath(page string) string {
	return strings.TrimSuffix(page, filepath.Ext(page)) + SummarySuffix
}

// pageSink writes each summary next to the page it came from, or to the
// clipboard when no page is set.
type pageSink struct {
	mu        sync.Mutex
	page      string
	clipboard clipboard.Sink
}

func (s *pageSink) set(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

func (s *pageSink) Write(ctx context.Context, text string) error {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()
	if page == "" {
		return s.clipboard.Write(ctx, text)
	}
	return clipboard.FileSink{Path: SummaryPath(page)}.Write(ctx, text)
}

// WatchAction summarizes every watch page saved into --dir until interrupted.
func WatchAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	dir := c.String("dir")
	if dir == "" {
		dir = cfg.Watch.Dir
	}
	if dir == "" {
		return fmt.Errorf("no directory to watch: pass --dir or set watch.dir in the config")
	}

	database, err := common.OpenDB(c, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := templates.New(cfg.Templates...)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	settings := common.ResolveSettings(c, database, logger)
	if strings.TrimSpace(settings.APIKey) == "" {
		return cli.Exit(models.ErrMissingAPIKey.Message(), 1)
	}

	orch := acquire.NewFromConfig(cfg, logger)
	content := messaging.NewRouter()
	sink := &pageSink{clipboard: clipboard.NewCommandSink(cfg.Clipboard.Command)}

	successMsg := "Summary saved."
	if c.Bool("clipboard") {
		successMsg = coordinator.StatusCopied
	}

	coord, err := coordinator.New(coordinator.Options{
		Content:        content,
		Background:     messaging.NewBackgroundRouter(chat.NewClient(cfg.Chat)),
		Templates:      store,
		Sink:           sink,
		Settings:       database,
		History:        database,
		Detector:       language.NewLingua(),
		Reporter:       common.StatusPrinter(c.App.ErrWriter, c.Bool("quiet")),
		Logger:         logger,
		ReinjectDelay:  cfg.Messaging.ReinjectDelay,
		ProviderName:   cfg.Chat.ProviderName,
		SuccessMessage: successMsg,
		Source:         "watch",
	})
	if err != nil {
		return err
	}

	handler := func(ctx context.Context, path string) error {
		doc, err := fetcher.LoadFile(path, "")
		if err != nil {
			return err
		}
		content.Handle(models.ActionGetTranscript, messaging.ContentHandler(orch, doc))
		defer content.Remove(models.ActionGetTranscript)

		if c.Bool("clipboard") {
			sink.set("")
		} else {
			sink.set(path)
		}
		fmt.Fprintf(c.App.ErrWriter, "%s\n", filepath.Base(path))
		_, err = coord.Run(ctx, settings)
		return err
	}

	// One coordinator serves every page, so pages are handled one at a time.
	w, err := watcher.New(dir, handler, logger, 1, cfg.Watch.Settle)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(c.App.ErrWriter, "Watching %s for saved watch pages (Ctrl-C to stop)\n", dir)
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
