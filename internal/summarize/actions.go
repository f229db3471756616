package summarize

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/yt-summarizer/internal/common"
	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/acquire"
	"github.com/dtnitsch/yt-summarizer/pkg/chat"
	"github.com/dtnitsch/yt-summarizer/pkg/coordinator"
	"github.com/dtnitsch/yt-summarizer/pkg/language"
	"github.com/dtnitsch/yt-summarizer/pkg/messaging"
	"github.com/dtnitsch/yt-summarizer/pkg/templates"
	"github.com/urfave/cli/v2"
)

func SummarizeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
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

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := acquire.NewFromConfig(cfg, logger)
	src, err := openSource(ctx, c, orch, logger)
	if err != nil {
		return err
	}
	defer src.close()

	var detector language.Detector = language.None{}
	if c.Bool("detect-language") {
		detector = language.NewLingua()
	}
	sink, successMsg := common.NewSink(c.String("output"), cfg)

	coord, err := coordinator.New(coordinator.Options{
		Content:        src.content,
		Injector:       src.injector,
		Background:     messaging.NewBackgroundRouter(chat.NewClient(cfg.Chat)),
		Templates:      store,
		Sink:           sink,
		Settings:       database,
		History:        database,
		Detector:       detector,
		Reporter:       common.StatusPrinter(c.App.ErrWriter, c.Bool("quiet")),
		Logger:         logger,
		ReinjectDelay:  cfg.Messaging.ReinjectDelay,
		ProviderName:   cfg.Chat.ProviderName,
		SuccessMessage: successMsg,
		Source:         "summarize",
	})
	if err != nil {
		return err
	}

	out, err := coord.Run(ctx, settings)
	if err != nil {
		// The summary is not lost when only the copy failed.
		if errors.Is(err, coordinator.ErrClipboardWriteFailure) && out.Summary != "" {
			fmt.Fprintln(c.App.Writer, out.Summary)
		}
		return cli.Exit("", 1)
	}
	if c.Bool("print") && c.String("output") != "-" {
		fmt.Fprintln(c.App.Writer, out.Summary)
	}
	return nil
}

// TranscriptAction acquires the transcript only and prints the result.
func TranscriptAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := acquire.NewFromConfig(cfg, logger)
	src, err := openSource(ctx, c, orch, logger)
	if err != nil {
		return err
	}
	defer src.close()

	resp, err := messaging.SendWithReinject(ctx, src.content, src.injector, cfg.Messaging.ReinjectDelay,
		models.Request{Action: models.ActionGetTranscript})
	if err != nil {
		return fmt.Errorf("failed to reach page: %w", err)
	}

	result := models.TranscriptFailed(models.ErrorReason(resp.Error))
	if resp.Transcript != nil {
		result = *resp.Transcript
	}

	if c.Bool("text") {
		if !result.Success {
			return cli.Exit(result.Error.Message(), 1)
		}
		fmt.Fprintln(c.App.Writer, result.Text)
		return nil
	}

	if err := common.WriteStructured(c.App.Writer, result, c.String("format")); err != nil {
		return err
	}
	if !result.Success {
		return cli.Exit("", 1)
	}
	return nil
}
