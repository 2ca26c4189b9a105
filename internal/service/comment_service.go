package service

import (
	"context"
	"yatube/internal/models"
	"yatube/internal/repository"
)

type CommentService interface {
	AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (c *commentService) AddComment(ctx context.Context, postID, authorID, text string) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}

	err := c.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}
