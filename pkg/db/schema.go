package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Settings: the popup's persisted choices, one row per key
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- URLs: normalized page URLs a transcript was read from
CREATE TABLE IF NOT EXISTS urls (
    url_id INTEGER PRIMARY KEY AUTOINCREMENT,
    original_url TEXT NOT NULL UNIQUE,
    canonical_url TEXT,
    scheme TEXT NOT NULL,
    domain TEXT NOT NULL,
    path TEXT,
    video_id TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_urls_video ON urls(video_id);

-- Runs: one row per summarize attempt, metadata only
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url_id INTEGER,
    title TEXT,
    template_id TEXT NOT NULL,
    language TEXT,
    success BOOLEAN NOT NULL DEFAULT 0,
    error_kind TEXT,            -- MissingApiKey, PanelNotFound, ApiError, ...
    error_message TEXT,
    transcript_chars INTEGER DEFAULT 0,
    summary_chars INTEGER DEFAULT 0,
    source TEXT,                -- summarize, watch
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (url_id) REFERENCES urls(url_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_url ON runs(url_id);
`
