// Package templates holds the prompt templates a summary can be built from.
package templates

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/yt-summarizer/models"
)

// DefaultID is used when a requested template does not exist.
const DefaultID = "general_summary"

const framing = `Start the header level at "##" because I will be pasting this in a section that already has a top level header.
No need to add a main title. Just proceed with the summary sections.`

// Store is an ordered, read-only set of templates.
type Store struct {
	list []models.PromptTemplate
	byID map[string]int
}

// New returns the built-in templates followed by extra. An extra template
// reusing an existing id is rejected.
func New(extra ...models.PromptTemplate) (*Store, error) {
	s := &Store{byID: make(map[string]int, len(builtin)+len(extra))}
	for _, t := range builtin {
		s.add(t)
	}
	for _, t := range extra {
		if t.ID == "" || t.InstructionText == "" {
			return nil, fmt.Errorf("template %q needs an id and a prompt", t.ID)
		}
		if _, dup := s.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		if t.DisplayName == "" {
			t.DisplayName = t.ID
		}
		s.add(t)
	}
	return s, nil
}

func (s *Store) add(t models.PromptTemplate) {
	s.byID[t.ID] = len(s.list)
	s.list = append(s.list, t)
}

// Get looks up a template by id.
func (s *Store) Get(id string) (models.PromptTemplate, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.PromptTemplate{}, false
	}
	return s.list[i], true
}

// Resolve returns the template for id, or the default one.
func (s *Store) Resolve(id string) models.PromptTemplate {
	if t, ok := s.Get(id); ok {
		return t
	}
	t, _ := s.Get(DefaultID)
	return t
}

// List returns all templates in display order.
func (s *Store) List() []models.PromptTemplate {
	out := make([]models.PromptTemplate, len(s.list))
	copy(out, s.list)
	return out
}

// BuildPrompt frames transcript for the model: instruction, the heading
// directive, then the transcript in a fenced block.
func BuildPrompt(instruction, transcript string) string {
	var b strings.Builder
	b.WriteString(instruction)
	b.WriteString("\n\n")
	b.WriteString(framing)
	b.WriteString("\n\nTranscript:\n```\n")
	b.WriteString(transcript)
	b.WriteString("\n```")
	return strings.TrimSpace(b.String())
}
