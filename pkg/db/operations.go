package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dtnitsch/yt-summarizer/models"
)

// Setting keys, shared with the browser extension's storage layout.
const (
	KeyAPIKey   = "deepseekApiKey"
	KeyTemplate = "selectedTemplate"
)

// GetSetting returns the value stored under key; ok is false when unset.
func (db *DB) GetSetting(key string) (value string, ok bool, err error) {
	err = db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key (upsert).
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// LoadSettings reads the stored API key and template selection. Unset
// keys come back empty.
func (db *DB) LoadSettings() (models.Settings, error) {
	var s models.Settings
	var err error
	if s.APIKey, _, err = db.GetSetting(KeyAPIKey); err != nil {
		return models.Settings{}, err
	}
	if s.TemplateID, _, err = db.GetSetting(KeyTemplate); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// SaveSettings writes both settings in one transaction.
func (db *DB) SaveSettings(s models.Settings) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, kv := range [][2]string{{KeyAPIKey, s.APIKey}, {KeyTemplate, s.TemplateID}} {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
		`, kv[0], kv[1])
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}

// InsertURL parses and inserts a URL, returning the url_id.
// If the URL already exists, returns the existing url_id.
func (db *DB) InsertURL(rawURL string) (int64, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}

	var existingID int64
	err = db.QueryRow("SELECT url_id FROM urls WHERE original_url = ?", rawURL).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing URL: %w", err)
	}

	// Canonical URL keeps only the video id from the query
	canonicalURL := fmt.Sprintf("%s://%s%s", parsed.Scheme, parsed.Host, parsed.Path)
	vid := VideoID(parsed)
	if v := parsed.Query().Get("v"); v != "" {
		canonicalURL += "?v=" + v
	}

	result, err := db.Exec(`
		INSERT INTO urls (original_url, canonical_url, scheme, domain, path, video_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rawURL, canonicalURL, parsed.Scheme, parsed.Host, parsed.Path, vid)
	if err != nil {
		return 0, fmt.Errorf("failed to insert URL: %w", err)
	}

	urlID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get URL ID: %w", err)
	}
	return urlID, nil
}

// VideoID pulls the video id out of watch, short-link and shorts URLs.
func VideoID(u *url.URL) string {
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	switch {
	case host == "youtu.be":
		return strings.Trim(u.Path, "/")
	case strings.HasPrefix(u.Path, "/shorts/"):
		return strings.Trim(strings.TrimPrefix(u.Path, "/shorts/"), "/")
	default:
		return u.Query().Get("v")
	}
}

// RecordRun stores a run row and returns its id. The URL, when known, is
// normalized into urls first; a URL that cannot be stored leaves the row
// without one.
func (db *DB) RecordRun(run models.Run) (int64, error) {
	var urlID sql.NullInt64
	if run.URL != "" {
		id, err := db.InsertURL(run.URL)
		if err != nil {
			slog.Warn("recording run without URL", "url", run.URL, "error", err)
		} else {
			urlID = sql.NullInt64{Int64: id, Valid: true}
		}
	}

	result, err := db.Exec(`
		INSERT INTO runs (url_id, title, template_id, language, success, error_kind,
			error_message, transcript_chars, summary_chars, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, urlID, run.Title, run.TemplateID, run.Language, run.Success, string(run.ErrorKind),
		run.ErrorMessage, run.TranscriptChars, run.SummaryChars, run.Source)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

const runColumns = `
	SELECT r.run_id, u.original_url, u.video_id, r.title, r.template_id, r.language,
		r.success, r.error_kind, r.error_message, r.transcript_chars, r.summary_chars,
		r.source, r.created_at
	FROM runs r
	LEFT JOIN urls u ON u.url_id = r.url_id
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (models.Run, error) {
	var r models.Run
	var urlStr, videoID, title, language, errorKind, errorMessage, source sql.NullString
	if err := row.Scan(&r.ID, &urlStr, &videoID, &title, &r.TemplateID, &language,
		&r.Success, &errorKind, &errorMessage, &r.TranscriptChars, &r.SummaryChars,
		&source, &r.CreatedAt); err != nil {
		return r, err
	}
	r.URL = urlStr.String
	r.VideoID = videoID.String
	r.Title = title.String
	r.Language = language.String
	r.ErrorKind = models.ErrorReason(errorKind.String)
	r.ErrorMessage = errorMessage.String
	r.Source = source.String
	return r, nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]models.Run, error) {
	query := runColumns + " ORDER BY r.created_at DESC, r.run_id DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run by id.
func (db *DB) GetRun(runID int64) (models.Run, error) {
	r, err := scanRun(db.QueryRow(runColumns+" WHERE r.run_id = ?", runID))
	if err == sql.ErrNoRows {
		return r, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return r, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}
