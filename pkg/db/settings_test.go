package db

import (
	"path/filepath"
	"testing"

	"github.com/dtnitsch/yt-summarizer/models"
)

func TestLoadSettings_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	got, err := db.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got != (models.Settings{}) {
		t.Errorf("LoadSettings() = %+v, want zero value", got)
	}
}

func TestSaveSettings_Upsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.SaveSettings(models.Settings{APIKey: "sk-1", TemplateID: "action_items"}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	if err := db.SaveSettings(models.Settings{APIKey: "sk-2", TemplateID: "music_producer"}); err != nil {
		t.Fatalf("SaveSettings() second call error = %v", err)
	}

	got, err := db.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	want := models.Settings{APIKey: "sk-2", TemplateID: "music_producer"}
	if got != want {
		t.Errorf("LoadSettings() = %+v, want %+v", got, want)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if count != 2 {
		t.Errorf("settings rows = %d, want 2", count)
	}
}

func TestGetSetting_StorageKeys(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.SetSetting("deepseekApiKey", "sk-raw"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	got, ok, err := db.GetSetting(KeyAPIKey)
	if err != nil || !ok || got != "sk-raw" {
		t.Errorf("GetSetting() = %q, %v, %v", got, ok, err)
	}

	_, ok, err = db.GetSetting(KeyTemplate)
	if err != nil || ok {
		t.Errorf("GetSetting(unset) ok = %v, err = %v", ok, err)
	}
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "yts.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if err := db.SaveSettings(models.Settings{APIKey: "k"}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	db.Close()

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer again.Close()
	got, _ := again.LoadSettings()
	if got.APIKey != "k" {
		t.Errorf("APIKey after reopen = %q, want %q", got.APIKey, "k")
	}
}
