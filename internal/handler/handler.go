package handlers

import (
	"github.com/go-playground/validator/v10"
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/repository"
	"yatube/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	FollowService  service.FollowService
	UserRepo       repository.UserRepository
	GroupRepo      repository.GroupRepository
	PostRepo       repository.PostRepository
	CommentRepo    repository.CommentRepository
	DB             database.MethodsDB
	Cache          cache.PageCache
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, db database.MethodsDB, pageCache cache.PageCache, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		PostService:    services.Post,
		CommentService: services.Comment,
		FollowService:  services.Follow,
		UserRepo:       repo.User,
		GroupRepo:      repo.Group,
		PostRepo:       repo.Post,
		CommentRepo:    repo.Comment,
		DB:             db,
		Cache:          pageCache,
		Cfg:            cfg,
		Validate:       validator.New(),
	}
}
