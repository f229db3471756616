package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/dtnitsch/yt-summarizer/models"
	dbpkg "github.com/dtnitsch/yt-summarizer/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// EnvAPIKey is read when neither the flag nor the stored settings carry a key.
const EnvAPIKey = "YTS_API_KEY"

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	urlPattern          = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:[0-9]+)?(/[^\s]*)?$`)
)

// NewLogger builds the JSON stderr logger from the global --quiet and
// --debug flags.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads --config, or the default config path when unset.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	path := c.String("config")
	if path == "" {
		path = models.DefaultConfigPath()
	}
	return models.LoadConfig(path)
}

// OpenDB opens --db, falling back to the config's storage path and then
// the default location.
func OpenDB(c *cli.Context, cfg *models.Config) (*dbpkg.DB, error) {
	path := c.String("db")
	if path == "" {
		path = cfg.Storage.Path
	}
	database, err := dbpkg.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// ResolveSettings merges --api-key and --template over the stored settings.
// The environment supplies the key only when nothing else does.
func ResolveSettings(c *cli.Context, database *dbpkg.DB, logger *slog.Logger) models.Settings {
	settings, err := database.LoadSettings()
	if err != nil {
		logger.Warn("failed to load stored settings", "error", err)
	}
	if c.IsSet("api-key") {
		settings.APIKey = c.String("api-key")
	}
	if c.IsSet("template") {
		settings.TemplateID = c.String("template")
	}
	if strings.TrimSpace(settings.APIKey) == "" {
		settings.APIKey = os.Getenv(EnvAPIKey)
	}
	return settings
}

// WriteStructured encodes v as yaml (default) or json.
func WriteStructured(w io.Writer, v interface{}, format string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case "", "yaml":
		data, err = yaml.Marshal(v)
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste issues.
// Removes whitespace, trailing punctuation and markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [text](url) -> url
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs sanitizes all URLs and returns (sanitized URLs, invalid URLs).
// Invalid URLs are those that fail validation even after sanitization.
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalidURLs []string

	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)
		if cleaned == "" || strings.Contains(cleaned, " ") || !urlPattern.MatchString(cleaned) {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		parsed, err := url.Parse(cleaned)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}
		if strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		sanitized = append(sanitized, cleaned)
	}

	return sanitized, invalidURLs
}

// WatchURL cleans a single --url value.
func WatchURL(raw string) (string, error) {
	valid, invalid := SanitizeAndValidateURLs([]string{raw})
	if len(invalid) > 0 {
		return "", fmt.Errorf("malformed URL %q (spaces must be encoded as %%20)", raw)
	}
	return valid[0], nil
}
