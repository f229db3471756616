package models

import "time"

// Settings are the user's persisted choices.
type Settings struct {
	APIKey     string `json:"apiKey" yaml:"api_key"`
	TemplateID string `json:"templateId" yaml:"template_id"`
}

// MaskedKey shows only the last four characters of the API key.
func (s Settings) MaskedKey() string {
	if len(s.APIKey) <= 4 {
		if s.APIKey == "" {
			return ""
		}
		return "****"
	}
	return "****" + s.APIKey[len(s.APIKey)-4:]
}

// Run is one summarize attempt as kept in history. The transcript and
// summary themselves are not stored, only their sizes.
type Run struct {
	ID              int64       `json:"id" yaml:"id"`
	URL             string      `json:"url,omitempty" yaml:"url,omitempty"`
	VideoID         string      `json:"video_id,omitempty" yaml:"video_id,omitempty"`
	Title           string      `json:"title,omitempty" yaml:"title,omitempty"`
	TemplateID      string      `json:"template_id" yaml:"template_id"`
	Language        string      `json:"language,omitempty" yaml:"language,omitempty"`
	Success         bool        `json:"success" yaml:"success"`
	ErrorKind       ErrorReason `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	ErrorMessage    string      `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	TranscriptChars int         `json:"transcript_chars" yaml:"transcript_chars"`
	SummaryChars    int         `json:"summary_chars" yaml:"summary_chars"`
	Source          string      `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt       time.Time   `json:"created_at" yaml:"created_at"`
}
