package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/storage"

	"github.com/google/uuid"
)

// ErrNotAuthor возвращается при попытке редактировать чужой пост.
// Обработчик переводит её в редирект на страницу поста, а не в 403.
var ErrNotAuthor = errors.New("пользователь не автор поста")

type CreatePostRequest struct {
	AuthorID  string
	Text      string
	GroupID   *string
	ImageName string
	Image     io.Reader
	ImageSize int64
}

type EditPostRequest struct {
	Post      *models.Post
	EditorID  string
	Text      string
	GroupID   *string
	ImageName string
	Image     io.Reader
	ImageSize int64
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	EditPost(ctx context.Context, req EditPostRequest) error
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
	}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		PostID:   uuid.New().String(),
		AuthorID: req.AuthorID,
		GroupID:  req.GroupID,
		Text:     req.Text,
	}

	if req.Image != nil {
		objectName, imageURL, err := p.storage.UploadImage(ctx, post.PostID, req.ImageName, req.Image, req.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки изображения: %w", err)
		}
		post.ImageURL = &imageURL

		if err := p.postRepo.Create(ctx, post); err != nil {
			p.storage.DeleteImage(ctx, objectName)
			return nil, err
		}
		return post, nil
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// EditPost применяет правки к посту. Автор поста не меняется;
// правка не автором не пишет ничего и возвращает ErrNotAuthor.
func (p *postService) EditPost(ctx context.Context, req EditPostRequest) error {
	post := req.Post

	if post.AuthorID != req.EditorID {
		return ErrNotAuthor
	}

	post.Text = req.Text
	post.GroupID = req.GroupID

	if req.Image != nil {
		_, imageURL, err := p.storage.UploadImage(ctx, post.PostID, req.ImageName, req.Image, req.ImageSize)
		if err != nil {
			return fmt.Errorf("ошибка загрузки изображения: %w", err)
		}
		post.ImageURL = &imageURL
	}

	return p.postRepo.Update(ctx, post)
}
