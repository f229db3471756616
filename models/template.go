package models

// PromptTemplate is an instruction preset the user picks before a run.
type PromptTemplate struct {
	ID              string `json:"id" yaml:"id"`
	DisplayName     string `json:"name" yaml:"name"`
	InstructionText string `json:"prompt" yaml:"prompt"`
}
