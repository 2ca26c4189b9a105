package repository

import (
	"context"
	"yatube/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByAuthorAndID(ctx context.Context, username, postID string) (*models.Post, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Post, error)
	CountAll(ctx context.Context) (int, error)
	ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]models.Post, error)
	CountByGroup(ctx context.Context, groupID string) (int, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
	ListFeed(ctx context.Context, userID string, limit, offset int) ([]models.Post, error)
	CountFeed(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, post *models.Post) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
}

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID string) error
	Delete(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
}

type Repository struct {
	User    UserRepository
	Group   GroupRepository
	Post    PostRepository
	Comment CommentRepository
	Follow  FollowRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Group:   NewGroupRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
	}
}
