package db

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/yt-summarizer/internal/common"
	"github.com/dtnitsch/yt-summarizer/models"
	"github.com/dtnitsch/yt-summarizer/pkg/templates"
	"github.com/urfave/cli/v2"
)

// HistoryAction lists recent runs.
func HistoryAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	database, err := common.OpenDB(c, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	if c.IsSet("format") {
		if runs == nil {
			runs = []models.Run{}
		}
		return common.WriteStructured(c.App.Writer, runs, c.String("format"))
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-6s %-20s %-8s %-20s %-5s %-30s %s\n",
		"ID", "Created", "Result", "Template", "Lang", "Title", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range runs {
		result := "ok"
		if !r.Success {
			result = "failed"
		}
		fmt.Fprintf(w, "%-6d %-20s %-8s %-20s %-5s %-30s %s\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			result,
			r.TemplateID,
			r.Language,
			truncate(r.Title, 30),
			string(r.ErrorKind),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'yts history show <id>' to see details\n")
	return nil
}

// RunAction shows one run, the latest when no id is given.
func RunAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	database, err := common.OpenDB(c, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}
	r, err := database.GetRun(runID)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Run %d\n", r.ID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Created:     %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Source:      %s\n", r.Source)
	fmt.Fprintf(w, "Title:       %s\n", r.Title)
	fmt.Fprintf(w, "URL:         %s\n", r.URL)
	if r.VideoID != "" {
		fmt.Fprintf(w, "Video ID:    %s\n", r.VideoID)
	}
	fmt.Fprintf(w, "Template:    %s\n", r.TemplateID)
	fmt.Fprintf(w, "Language:    %s\n", r.Language)
	fmt.Fprintf(w, "Transcript:  %d chars\n", r.TranscriptChars)
	fmt.Fprintf(w, "Summary:     %d chars\n", r.SummaryChars)
	if r.Success {
		fmt.Fprintln(w, "Result:      ok")
	} else {
		fmt.Fprintf(w, "Result:      failed [%s] %s\n", r.ErrorKind, r.ErrorMessage)
	}
	return nil
}

// SettingsAction shows the stored settings, updating them first when
// --api-key or --template is given.
func SettingsAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	database, err := common.OpenDB(c, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	settings, err := database.LoadSettings()
	if err != nil {
		return err
	}

	if c.IsSet("api-key") || c.IsSet("template") {
		if c.IsSet("api-key") {
			settings.APIKey = strings.TrimSpace(c.String("api-key"))
		}
		if c.IsSet("template") {
			store, err := templates.New(cfg.Templates...)
			if err != nil {
				return fmt.Errorf("failed to load templates: %w", err)
			}
			id := c.String("template")
			if _, ok := store.Get(id); !ok {
				return fmt.Errorf("unknown template %q (see 'yts templates')", id)
			}
			settings.TemplateID = id
		}
		if err := database.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Fprintln(c.App.ErrWriter, "Settings saved.")
	}

	w := c.App.Writer
	key := settings.MaskedKey()
	if key == "" {
		key = "(not set)"
	}
	tmpl := settings.TemplateID
	if tmpl == "" {
		tmpl = templates.DefaultID + " (default)"
	}
	fmt.Fprintf(w, "API key:   %s\n", key)
	fmt.Fprintf(w, "Template:  %s\n", tmpl)
	fmt.Fprintf(w, "Database:  %s\n", database.Path())
	return nil
}
