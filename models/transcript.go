package models

import "fmt"

// ErrorReason identifies why a run or an acquisition stopped.
type ErrorReason string

const (
	ErrMissingAPIKey               ErrorReason = "MissingApiKey"
	ErrPanelNotFound               ErrorReason = "PanelNotFound"
	ErrExtractionFailedAfterExpand ErrorReason = "ExtractionFailedAfterExpand"
	ErrMessagingChannelFailure     ErrorReason = "MessagingChannelFailure"
	ErrAPIError                    ErrorReason = "ApiError"
	ErrClipboardWriteFailure       ErrorReason = "ClipboardWriteFailure"
)

var reasonMessages = map[ErrorReason]string{
	ErrMissingAPIKey:               "Please enter an API Key.",
	ErrPanelNotFound:               "Transcript renderer not found.",
	ErrExtractionFailedAfterExpand: "Could not extract text after expanding.",
	ErrMessagingChannelFailure:     "Still failing after injection. Please reload the page.",
	ErrAPIError:                    "API Error",
	ErrClipboardWriteFailure:       "Summary generated but failed to copy.",
}

// Message returns the short status line shown to the user for this reason.
func (r ErrorReason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// Known reports whether r is one of the defined reasons.
func (r ErrorReason) Known() bool {
	_, ok := reasonMessages[r]
	return ok
}

// TranscriptResult is the single outcome of one acquisition.
// Use TranscriptSucceeded or TranscriptFailed to build one.
type TranscriptResult struct {
	Success   bool        `json:"success" yaml:"success"`
	Text      string      `json:"text,omitempty" yaml:"text,omitempty"`
	Title     string      `json:"title,omitempty" yaml:"title,omitempty"`
	SourceURL string      `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	Error     ErrorReason `json:"error,omitempty" yaml:"error,omitempty"`
}

// TranscriptSucceeded builds a successful result. An empty text is not a
// success, so it degrades to ExtractionFailedAfterExpand.
func TranscriptSucceeded(text, title, sourceURL string) TranscriptResult {
	if text == "" {
		return TranscriptFailed(ErrExtractionFailedAfterExpand)
	}
	return TranscriptResult{
		Success:   true,
		Text:      text,
		Title:     title,
		SourceURL: sourceURL,
	}
}

// TranscriptFailed builds a failed result carrying reason.
func TranscriptFailed(reason ErrorReason) TranscriptResult {
	return TranscriptResult{Error: reason}
}

// Validate checks the success/error invariant.
func (r TranscriptResult) Validate() error {
	if r.Success {
		if r.Text == "" {
			return fmt.Errorf("successful transcript result has no text")
		}
		if r.Error != "" {
			return fmt.Errorf("successful transcript result carries error %q", r.Error)
		}
		return nil
	}
	if r.Error == "" {
		return fmt.Errorf("failed transcript result has no error")
	}
	if r.Text != "" {
		return fmt.Errorf("failed transcript result carries text")
	}
	return nil
}
