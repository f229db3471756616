package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/yt-summarizer/internal/db"
	"github.com/dtnitsch/yt-summarizer/internal/summarize"
	"github.com/dtnitsch/yt-summarizer/internal/templates"
	"github.com/dtnitsch/yt-summarizer/internal/watch"
	"github.com/dtnitsch/yt-summarizer/pkg/help"
	"github.com/urfave/cli/v2"
)

// sourceFlags pick the page a transcript is read from.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "saved watch page (HTML) to read",
		},
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "watch page URL to open, or the URL to report for --file",
		},
		&cli.StringFlag{
			Name:  "cdp",
			Usage: "DevTools endpoint of a running Chrome, e.g. http://127.0.0.1:9222",
		},
		&cli.StringFlag{
			Name:  "tab",
			Usage: "pick the open tab whose URL contains this text",
			Value: "youtube.com/watch",
		},
		&cli.BoolFlag{
			Name:  "headless",
			Usage: "run a launched Chrome without a window",
			Value: true,
		},
		&cli.BoolFlag{
			Name:  "fetch",
			Usage: "download --url over plain HTTP instead of using Chrome",
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "yts",
		Usage: "Summarize YouTube transcripts with a chat model",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (default: user config dir/yts/config.yaml)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "SQLite database for settings and history",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log acquisition steps",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "summarize",
				Usage: "Summarize a video's transcript and copy the result",
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "prompt template id (default: stored selection)",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Aliases: []string{"k"},
						Usage:   "chat API key (default: stored key, then $YTS_API_KEY)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the summary to this file instead of the clipboard (- for stdout)",
					},
					&cli.BoolFlag{
						Name:  "print",
						Usage: "also print the summary",
					},
					&cli.BoolFlag{
						Name:  "detect-language",
						Usage: "record the transcript language in history",
						Value: true,
					},
				),
				Action: summarize.SummarizeAction,
			},
			{
				Name:  "transcript",
				Usage: "Read a video's transcript without summarizing it",
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "output format: yaml or json",
						Value: "yaml",
					},
					&cli.BoolFlag{
						Name:  "text",
						Usage: "print the transcript text only",
					},
				),
				Action: summarize.TranscriptAction,
			},
			{
				Name:  "watch",
				Usage: "Summarize every watch page saved into a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "directory to watch (default: watch.dir from the config)",
					},
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "prompt template id (default: stored selection)",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Aliases: []string{"k"},
						Usage:   "chat API key (default: stored key, then $YTS_API_KEY)",
					},
					&cli.BoolFlag{
						Name:  "clipboard",
						Usage: "copy each summary instead of writing <page>.summary.md",
					},
				},
				Action: watch.WatchAction,
			},
			{
				Name:      "templates",
				Usage:     "List prompt templates, or show one",
				ArgsUsage: "[id]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "print the list as yaml or json",
					},
				},
				Action: templates.TemplatesAction,
			},
			{
				Name:  "history",
				Usage: "List past runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "number of runs to show (0 for all)",
						Value:   20,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "print as yaml or json",
					},
				},
				Action: db.HistoryAction,
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Show one run (default: latest)",
						ArgsUsage: "[id]",
						Action:    db.RunAction,
					},
				},
			},
			{
				Name:  "settings",
				Usage: "Show or change the stored API key and template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "api-key",
						Aliases: []string{"k"},
						Usage:   "store this API key",
					},
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "store this template as the selection",
					},
				},
				Action: db.SettingsAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print example commands and config",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
