package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"yatube/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound помечает ошибки "запись не найдена", чтобы обработчики
// могли отличить их от сбоев БД через errors.Is.
var ErrNotFound = errors.New("запись не найдена")

type postRepository struct {
	db *sqlx.DB
}

const postColumns = `
	p.post_id, p.author_id, u.username AS author,
	p.group_id, g.slug AS group_slug,
	p.text, p.image_url, p.created_at
`

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.CreatedAt = time.Now()

	query := `
		INSERT INTO posts (post_id, author_id, group_id, text, image_url, created_at)
		VALUES (:post_id, :author_id, :group_id, :text, :image_url, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *postRepository) GetByAuthorAndID(ctx context.Context, username, postID string) (*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		JOIN users u ON u.user_id = p.author_id
		LEFT JOIN groups g ON g.group_id = p.group_id
		WHERE p.post_id = $1 AND u.username = $2
	`, postColumns)

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост %s автора %s: %w", postID, username, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		JOIN users u ON u.user_id = p.author_id
		LEFT JOIN groups g ON g.group_id = p.group_id
		ORDER BY p.created_at DESC, p.post_id
		LIMIT $1 OFFSET $2
	`, postColumns)

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка постов: %w", err)
	}

	return posts, nil
}

func (r *postRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете постов: %w", err)
	}
	return count, nil
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		JOIN users u ON u.user_id = p.author_id
		LEFT JOIN groups g ON g.group_id = p.group_id
		WHERE p.group_id = $1
		ORDER BY p.created_at DESC, p.post_id
		LIMIT $2 OFFSET $3
	`, postColumns)

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов группы: %w", err)
	}

	return posts, nil
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете постов группы: %w", err)
	}
	return count, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		JOIN users u ON u.user_id = p.author_id
		LEFT JOIN groups g ON g.group_id = p.group_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.post_id
		LIMIT $2 OFFSET $3
	`, postColumns)

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов автора: %w", err)
	}

	return posts, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете постов автора: %w", err)
	}
	return count, nil
}

// ListFeed возвращает посты авторов, на которых подписан пользователь.
func (r *postRepository) ListFeed(ctx context.Context, userID string, limit, offset int) ([]models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		JOIN users u ON u.user_id = p.author_id
		LEFT JOIN groups g ON g.group_id = p.group_id
		JOIN follows f ON f.author_id = p.author_id
		WHERE f.user_id = $1
		ORDER BY p.created_at DESC, p.post_id
		LIMIT $2 OFFSET $3
	`, postColumns)

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}

	return posts, nil
}

func (r *postRepository) CountFeed(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM posts p
		JOIN follows f ON f.author_id = p.author_id
		WHERE f.user_id = $1
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете ленты: %w", err)
	}
	return count, nil
}

// Update меняет текст, группу и картинку поста. Автор не меняется:
// условие по author_id защищает пост от чужих правок.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			text = :text,
			group_id = :group_id,
			image_url = :image_url
		WHERE post_id = :post_id AND author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}
