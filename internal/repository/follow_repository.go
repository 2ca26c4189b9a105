package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create создает подписку. Повторная подписка не ошибка:
// уникальность пары (user_id, author_id) гасится через ON CONFLICT.
func (r *followRepository) Create(ctx context.Context, userID, authorID string) error {
	query := `
		INSERT INTO follows (follow_id, user_id, author_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), userID, authorID, time.Now())
	if err != nil {
		return fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	return nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID string) error {
	query := `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	query := `SELECT COUNT(*) FROM follows WHERE user_id = $1 AND author_id = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return count > 0, nil
}
