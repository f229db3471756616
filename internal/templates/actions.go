package templates

import (
	"fmt"

	"github.com/dtnitsch/yt-summarizer/internal/common"
	tmplpkg "github.com/dtnitsch/yt-summarizer/pkg/templates"
	"github.com/urfave/cli/v2"
)

// TemplatesAction lists the prompt templates, marking the stored
// selection. With an id argument it prints that template's instructions.
func TemplatesAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	store, err := tmplpkg.New(cfg.Templates...)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	w := c.App.Writer
	if c.NArg() > 0 {
		t, ok := store.Get(c.Args().First())
		if !ok {
			return fmt.Errorf("unknown template %q", c.Args().First())
		}
		fmt.Fprintf(w, "%s (%s)\n\n%s\n", t.DisplayName, t.ID, t.InstructionText)
		return nil
	}

	selected := tmplpkg.DefaultID
	database, err := common.OpenDB(c, cfg)
	if err == nil {
		if s, err := database.LoadSettings(); err == nil && s.TemplateID != "" {
			selected = store.Resolve(s.TemplateID).ID
		}
		database.Close()
	}

	if c.IsSet("format") {
		return common.WriteStructured(w, store.List(), c.String("format"))
	}
	for _, t := range store.List() {
		marker := " "
		if t.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-28s %s\n", marker, t.ID, t.DisplayName)
	}
	return nil
}
