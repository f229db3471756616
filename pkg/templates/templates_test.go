package templates

import (
	"strings"
	"testing"

	"github.com/dtnitsch/yt-summarizer/models"
)

func TestBuiltinOrder(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := []string{
		"general_summary",
		"music_producer",
		"filipino_linguist",
		"ai_developer",
		"technical_analysis",
		"educational_notes",
		"action_items",
		"software_developer",
	}
	got := s.List()
	if len(got) != len(want) {
		t.Fatalf("List() len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
		if got[i].DisplayName == "" || got[i].InstructionText == "" {
			t.Errorf("template %q is incomplete", id)
		}
	}
}

func TestResolve(t *testing.T) {
	s, _ := New()
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"known", "action_items", "action_items"},
		{"unknown falls back", "does_not_exist", DefaultID},
		{"empty falls back", "", DefaultID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Resolve(tt.id).ID; got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNew_Extra(t *testing.T) {
	s, err := New(models.PromptTemplate{ID: "podcast", InstructionText: "Summarize the podcast."})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, ok := s.Get("podcast")
	if !ok {
		t.Fatal("Get(podcast) not found")
	}
	if got.DisplayName != "podcast" {
		t.Errorf("DisplayName = %q, want id as fallback", got.DisplayName)
	}
	if last := s.List()[len(s.List())-1]; last.ID != "podcast" {
		t.Errorf("extra template not appended, last = %q", last.ID)
	}

	if _, err := New(models.PromptTemplate{ID: "general_summary", InstructionText: "x"}); err == nil {
		t.Error("New() with duplicate id: want error")
	}
	if _, err := New(models.PromptTemplate{ID: "blank"}); err == nil {
		t.Error("New() with empty prompt: want error")
	}
}

func TestList_IsACopy(t *testing.T) {
	s, _ := New()
	l := s.List()
	l[0].ID = "mutated"
	if s.List()[0].ID != DefaultID {
		t.Error("List() exposes internal slice")
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("Summarize this.", "Hello world foo")
	want := "Summarize this.\n\n" +
		"Start the header level at \"##\" because I will be pasting this in a section that already has a top level header.\n" +
		"No need to add a main title. Just proceed with the summary sections.\n\n" +
		"Transcript:\n```\nHello world foo\n```"
	if got != want {
		t.Errorf("BuildPrompt() =\n%s\nwant\n%s", got, want)
	}

	padded := BuildPrompt("\n  Summarize.", "t")
	if !strings.HasPrefix(padded, "Summarize.") {
		t.Errorf("BuildPrompt() not trimmed: %q", padded[:20])
	}
}

func TestSoftwareDeveloperKeepsFence(t *testing.T) {
	s, _ := New()
	tmpl, _ := s.Get("software_developer")
	if !strings.Contains(tmpl.InstructionText, "```python```") {
		t.Error("software_developer prompt lost its fenced example")
	}
}
