package service

import (
	"yatube/internal/config"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Follow  FollowService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		Post:    NewPostService(rep.Post, storage),
		Comment: NewCommentService(rep.Comment),
		Follow:  NewFollowService(rep.Follow),
	}
}
