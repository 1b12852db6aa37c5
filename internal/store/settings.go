package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// Setting keys used by the application.
const (
	SettingLastBackend     = "last_backend"
	SettingSelectedExperts = "selected_experts"
	SettingProjectContext  = "project_context"
)

// GetSetting returns the value for a settings key.
// Returns empty string (no error) when the key is absent.
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a value under a settings key.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes a settings key.
func (db *DB) DeleteSetting(key string) error {
	if _, err := db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// GetSelectedExperts returns the persisted selected expert ids.
func (db *DB) GetSelectedExperts() ([]string, error) {
	value, err := db.GetSetting(SettingSelectedExperts)
	if err != nil || value == "" {
		return nil, err
	}
	return strings.Split(value, ","), nil
}

// SetSelectedExperts persists the selected expert ids.
func (db *DB) SetSelectedExperts(ids []string) error {
	return db.SetSetting(SettingSelectedExperts, strings.Join(ids, ","))
}
