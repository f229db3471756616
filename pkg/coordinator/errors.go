package coordinator

import (
	"errors"

	"github.com/dtnitsch/yt-summarizer/models"
)

// ErrBusy is returned when Run is called while another run is in progress.
var ErrBusy = errors.New("coordinator: a run is already in progress")

// Error is a failed run. Message is the status line shown to the user; Err
// carries the underlying cause when there is one.
type Error struct {
	Reason  models.ErrorReason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Reason.Message()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Reason, so the package sentinels
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == e.Reason
}

var (
	ErrMissingAPIKey               = &Error{Reason: models.ErrMissingAPIKey}
	ErrPanelNotFound               = &Error{Reason: models.ErrPanelNotFound}
	ErrExtractionFailedAfterExpand = &Error{Reason: models.ErrExtractionFailedAfterExpand}
	ErrMessagingChannelFailure     = &Error{Reason: models.ErrMessagingChannelFailure}
	ErrAPIError                    = &Error{Reason: models.ErrAPIError}
	ErrClipboardWriteFailure       = &Error{Reason: models.ErrClipboardWriteFailure}
)

// ReasonOf returns the failure reason carried by err, or "" when err is
// not a run failure.
func ReasonOf(err error) models.ErrorReason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
