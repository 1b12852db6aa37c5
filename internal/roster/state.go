// Package roster manages the persistent panel of expert personas.
package roster

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/quorumhq/quorum/pkg/models"
)

// ExpertStore persists expert personas in a SQLite database.
type ExpertStore struct {
	db *sql.DB
}

// NewExpertStore opens (creating if needed) the expert database at dbPath.
func NewExpertStore(dbPath string) (*ExpertStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS experts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT,
			description TEXT,
			avatar TEXT,
			position INT,
			created_at DATETIME,
			updated_at DATETIME
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &ExpertStore{db: db}, nil
}

// Add inserts a new expert at the end of the roster and returns it with an ID assigned.
func (s *ExpertStore) Add(expert models.Expert) (models.Expert, error) {
	if expert.ID == "" {
		expert.ID = uuid.New().String()
	}

	var maxPos sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(position) FROM experts`).Scan(&maxPos); err != nil {
		return models.Expert{}, fmt.Errorf("next position: %w", err)
	}
	pos := int64(0)
	if maxPos.Valid {
		pos = maxPos.Int64 + 1
	}

	now := time.Now()
	_, err := s.db.Exec(`
		INSERT INTO experts (id, name, role, description, avatar, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, expert.ID, expert.Name, expert.Role, expert.Description, expert.Avatar, pos, now, now)
	if err != nil {
		return models.Expert{}, fmt.Errorf("insert expert: %w", err)
	}

	return expert, nil
}

// Update rewrites an existing expert's persona fields.
func (s *ExpertStore) Update(expert models.Expert) error {
	result, err := s.db.Exec(`
		UPDATE experts
		SET name = ?, role = ?, description = ?, avatar = ?, updated_at = ?
		WHERE id = ?
	`, expert.Name, expert.Role, expert.Description, expert.Avatar, time.Now(), expert.ID)
	if err != nil {
		return fmt.Errorf("update expert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expert not found: %s", expert.ID)
	}

	return nil
}

// Remove deletes an expert by ID.
func (s *ExpertStore) Remove(id string) error {
	result, err := s.db.Exec(`DELETE FROM experts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expert not found: %s", id)
	}

	return nil
}

// List returns all experts ordered by roster position.
func (s *ExpertStore) List() ([]models.Expert, error) {
	rows, err := s.db.Query(`
		SELECT id, name, role, description, avatar
		FROM experts
		ORDER BY position, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query experts: %w", err)
	}
	defer rows.Close()

	var experts []models.Expert
	for rows.Next() {
		var e models.Expert
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.Description, &e.Avatar); err != nil {
			return nil, fmt.Errorf("scan expert: %w", err)
		}
		experts = append(experts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experts: %w", err)
	}

	return experts, nil
}

// Count returns the number of stored experts.
func (s *ExpertStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM experts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count experts: %w", err)
	}
	return n, nil
}

// Close releases the underlying database handle.
func (s *ExpertStore) Close() error {
	return s.db.Close()
}
