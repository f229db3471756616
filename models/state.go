package models

// AcquisitionState is the step an acquisition is currently in.
// It only exists for the duration of one acquisition.
type AcquisitionState int

const (
	StateIdle AcquisitionState = iota
	StateProbingExisting
	StateExpandingDescription
	StateOpeningPanel
	StateWaitingForLoad
	StateResolved
)

func (s AcquisitionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProbingExisting:
		return "probing_existing"
	case StateExpandingDescription:
		return "expanding_description"
	case StateOpeningPanel:
		return "opening_panel"
	case StateWaitingForLoad:
		return "waiting_for_load"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}
