package common

import (
	"fmt"
	"io"

	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/clipboard"
	"github.com/dtnitsch/yt-summarizer/pkg/coordinator"
)

// StatusPrinter writes coordinator status lines to w. With quiet set only
// errors are shown.
func StatusPrinter(w io.Writer, quiet bool) coordinator.Reporter {
	return coordinator.ReporterFunc(func(level coordinator.Level, msg string) {
		if quiet && level != coordinator.LevelError {
			return
		}
		fmt.Fprintln(w, msg)
	})
}

// NewSink returns the sink for --output and the status line that reports
// success. No output path means the clipboard.
func NewSink(output string, cfg *models.Config) (clipboard.Sink, string) {
	switch output {
	case "":
		return clipboard.NewCommandSink(cfg.Clipboard.Command), coordinator.StatusCopied
	case "-":
		return clipboard.FileSink{Path: output}, "Summary written to stdout."
	default:
		return clipboard.FileSink{Path: output}, fmt.Sprintf("Summary written to %s.", output)
	}
}
