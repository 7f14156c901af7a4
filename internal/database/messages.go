package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"renvask/internal/models"
)

func (db *DB) CreateMessage(ctx context.Context, m *models.Message) error {
	query := `INSERT INTO messages (reference, name, email, body, created_at) VALUES (?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, m.Reference, m.Name, m.Email, m.Body, now)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	m.ID = id
	m.CreatedAt = now
	return nil
}

func (db *DB) ListMessages(ctx context.Context, limit int) ([]*models.Message, error) {
	query := `SELECT id, reference, name, email, body, created_at
              FROM messages ORDER BY created_at DESC LIMIT ?`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		m := &models.Message{}
		var reference sql.NullString
		if err := rows.Scan(&m.ID, &reference, &m.Name, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Reference = reference.String
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
