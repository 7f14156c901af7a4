package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"renvask/internal/models"
)

func (db *DB) CreateReview(ctx context.Context, r *models.Review) error {
	query := `INSERT INTO reviews (customer_name, service_id, rating, comment, created_at) VALUES (?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, r.CustomerName, r.ServiceID, r.Rating, r.Comment, now)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	r.ID = id
	r.CreatedAt = now
	return nil
}

func (db *DB) ListReviews(ctx context.Context, limit int) ([]*models.Review, error) {
	query := `SELECT id, customer_name, service_id, rating, comment, created_at
              FROM reviews ORDER BY created_at DESC LIMIT ?`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		r := &models.Review{}
		var serviceID, comment sql.NullString
		if err := rows.Scan(&r.ID, &r.CustomerName, &serviceID, &r.Rating, &comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		r.ServiceID = serviceID.String
		r.Comment = comment.String
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// AverageRating returns the mean rating and review count for a service.
// A service without reviews reports zero for both.
func (db *DB) AverageRating(ctx context.Context, serviceID string) (float64, int, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE service_id = ?`
	var avg float64
	var count int
	if err := db.QueryRowContext(ctx, query, serviceID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, count, nil
}
