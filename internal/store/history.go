package store

import (
	"fmt"
	"time"

	"github.com/quorumhq/quorum/pkg/models"
)

// SaveResult persists a completed task result to the history.
func (db *DB) SaveResult(r models.TaskResult) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO results
			(id, expert_id, expert_name, avatar, instruction, result_text, triggered_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ExpertID, r.ExpertName, r.Avatar, r.Instruction, r.Text, r.TriggeredBy, r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// ListResults returns up to limit results, newest first.
// A limit <= 0 returns everything.
func (db *DB) ListResults(limit int) ([]models.TaskResult, error) {
	query := "SELECT id, expert_id, expert_name, avatar, instruction, result_text, triggered_by, created_at FROM results ORDER BY created_at DESC, id"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []models.TaskResult
	for rows.Next() {
		var r models.TaskResult
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &r.ExpertID, &r.ExpertName, &r.Avatar, &r.Instruction, &r.Text, &r.TriggeredBy, &createdAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.CreatedAt = createdAt
		results = append(results, r)
	}

	return results, rows.Err()
}

// DeleteResult removes a single result from the history.
func (db *DB) DeleteResult(id string) error {
	if _, err := db.Exec("DELETE FROM results WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	return nil
}

// ClearResults removes all results from the history.
func (db *DB) ClearResults() error {
	if _, err := db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	return nil
}
