package models

// Actions understood by the messaging boundary.
const (
	ActionGetTranscript = "GET_TRANSCRIPT"
	ActionSummarize     = "SUMMARIZE"
)

// Request is a message sent across the content/background boundary.
type Request struct {
	Action string `json:"action"`
	APIKey string `json:"apiKey,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// Response answers a Request. GET_TRANSCRIPT fills Transcript,
// SUMMARIZE fills Summary. Error is set whenever Success is false.
type Response struct {
	Success    bool              `json:"success"`
	Transcript *TranscriptResult `json:"transcript,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// NewTranscriptResponse wraps an acquisition result for the wire.
func NewTranscriptResponse(r TranscriptResult) Response {
	resp := Response{Success: r.Success, Transcript: &r}
	if !r.Success {
		resp.Error = string(r.Error)
	}
	return resp
}

// NewSummaryResponse wraps a finished summary.
func NewSummaryResponse(summary string) Response {
	return Response{Success: true, Summary: summary}
}

// NewErrorResponse reports a failure with a human readable message.
func NewErrorResponse(msg string) Response {
	return Response{Success: false, Error: msg}
}
