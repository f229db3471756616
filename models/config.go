// Package models defines data structures for configuration, transcripts and messages.
package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigName = "config.yaml"
	AppDirName        = "yts"

	PolicyFixed = "fixed"
	PolicyPoll  = "poll"
)

// Config holds runtime configuration. Values come from an optional YAML
// file; CLI flags override the few that are exposed there.
type Config struct {
	Chat      ChatConfig       `yaml:"chat"`
	Acquire   AcquireConfig    `yaml:"acquire"`
	Selectors SelectorConfig   `yaml:"selectors"`
	Messaging MessagingConfig  `yaml:"messaging"`
	Clipboard ClipboardConfig  `yaml:"clipboard"`
	Storage   StorageConfig    `yaml:"storage"`
	Watch     WatchConfig      `yaml:"watch"`
	Templates []PromptTemplate `yaml:"templates"`
}

type ChatConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	Model        string        `yaml:"model"`
	SystemPrompt string        `yaml:"system_prompt"`
	ProviderName string        `yaml:"provider_name"`
	Timeout      time.Duration `yaml:"timeout"` // zero means no client timeout
}

type AcquireConfig struct {
	Policy       string        `yaml:"policy"` // fixed | poll
	RevealDelay  time.Duration `yaml:"reveal_delay"`
	LoadDelay    time.Duration `yaml:"load_delay"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// SelectorConfig names the page elements the extractor and orchestrator look for.
type SelectorConfig struct {
	TranscriptContainer string `yaml:"transcript_container"`
	TitleHeading        string `yaml:"title_heading"`
	TitleSuffix         string `yaml:"title_suffix"`
	Panel               string `yaml:"panel"`
	ExpandControl       string `yaml:"expand_control"`
	ShowTranscript      string `yaml:"show_transcript"`
}

type MessagingConfig struct {
	ReinjectDelay time.Duration `yaml:"reinject_delay"`
}

type ClipboardConfig struct {
	Command []string `yaml:"command"` // empty means autodetect
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type WatchConfig struct {
	Dir string `yaml:"dir"`
	// Settle is how long a new file sits before it is read.
	Settle time.Duration `yaml:"settle"`
}

// DefaultSelectors returns the selectors of the YouTube watch page.
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		TranscriptContainer: "#segments-container",
		TitleHeading:        "#title > h1",
		TitleSuffix:         " - YouTube",
		Panel:               "ytd-video-description-transcript-section-renderer",
		ExpandControl:       "#bottom-row",
		ShowTranscript:      `button[aria-label="Show transcript"]`,
	}
}

// DefaultConfig returns a validated config with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Validate checks the config and fills in defaults.
func (c *Config) Validate() error {
	if c.Chat.Endpoint == "" {
		c.Chat.Endpoint = "https://api.deepseek.com/chat/completions"
	}
	if c.Chat.Model == "" {
		c.Chat.Model = "deepseek-chat"
	}
	if c.Chat.SystemPrompt == "" {
		c.Chat.SystemPrompt = "You are a helpful assistant."
	}
	if c.Chat.ProviderName == "" {
		c.Chat.ProviderName = "DeepSeek"
	}
	if c.Chat.Timeout < 0 {
		return fmt.Errorf("chat.timeout must not be negative")
	}

	switch c.Acquire.Policy {
	case "":
		c.Acquire.Policy = PolicyFixed
	case PolicyFixed, PolicyPoll:
	default:
		return fmt.Errorf("acquire.policy must be %q or %q, got %q", PolicyFixed, PolicyPoll, c.Acquire.Policy)
	}
	if c.Acquire.RevealDelay < 0 || c.Acquire.LoadDelay < 0 || c.Acquire.PollInterval < 0 {
		return fmt.Errorf("acquire delays must not be negative")
	}
	if c.Acquire.RevealDelay == 0 {
		c.Acquire.RevealDelay = time.Second
	}
	if c.Acquire.LoadDelay == 0 {
		c.Acquire.LoadDelay = 1500 * time.Millisecond
	}
	if c.Acquire.PollInterval == 0 {
		c.Acquire.PollInterval = 100 * time.Millisecond
	}

	defaults := DefaultSelectors()
	if c.Selectors.TranscriptContainer == "" {
		c.Selectors.TranscriptContainer = defaults.TranscriptContainer
	}
	if c.Selectors.TitleHeading == "" {
		c.Selectors.TitleHeading = defaults.TitleHeading
	}
	if c.Selectors.TitleSuffix == "" {
		c.Selectors.TitleSuffix = defaults.TitleSuffix
	}
	if c.Selectors.Panel == "" {
		c.Selectors.Panel = defaults.Panel
	}
	if c.Selectors.ExpandControl == "" {
		c.Selectors.ExpandControl = defaults.ExpandControl
	}
	if c.Selectors.ShowTranscript == "" {
		c.Selectors.ShowTranscript = defaults.ShowTranscript
	}

	if c.Messaging.ReinjectDelay < 0 {
		return fmt.Errorf("messaging.reinject_delay must not be negative")
	}
	if c.Messaging.ReinjectDelay == 0 {
		c.Messaging.ReinjectDelay = 500 * time.Millisecond
	}

	if c.Watch.Settle < 0 {
		return fmt.Errorf("watch.settle must not be negative")
	}
	if c.Watch.Settle == 0 {
		c.Watch.Settle = time.Second
	}

	seen := make(map[string]bool, len(c.Templates))
	for i, t := range c.Templates {
		if t.ID == "" {
			return fmt.Errorf("templates[%d].id is required", i)
		}
		if t.InstructionText == "" {
			return fmt.Errorf("templates[%d].prompt is required", i)
		}
		if seen[t.ID] {
			return fmt.Errorf("templates[%d]: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = true
	}

	return nil
}

// DefaultConfigPath returns the config file location under the user config dir.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigName
	}
	return filepath.Join(dir, AppDirName, DefaultConfigName)
}

// LoadConfig reads a YAML config file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
