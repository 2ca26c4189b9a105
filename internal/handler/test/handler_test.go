package test

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"yatube/internal/config"
	handlers "yatube/internal/handler"
	"yatube/internal/repository"

	"github.com/go-playground/validator/v10"
)

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
}

type testDeps struct {
	authService    *MockAuthService
	postService    *MockPostService
	commentService *MockCommentService
	followService  *MockFollowService
	userRepo       *MockUserRepository
	groupRepo      *MockGroupRepository
	postRepo       *MockPostRepository
	commentRepo    *MockCommentRepository
	cache          *fakePageCache
}

func newTestHandlers() (*handlers.Handlers, *testDeps) {
	deps := &testDeps{
		authService:    new(MockAuthService),
		postService:    new(MockPostService),
		commentService: new(MockCommentService),
		followService:  new(MockFollowService),
		userRepo:       new(MockUserRepository),
		groupRepo:      new(MockGroupRepository),
		postRepo:       new(MockPostRepository),
		commentRepo:    new(MockCommentRepository),
		cache:          newFakePageCache(),
	}

	cfg := &config.Config{
		PageSize:      10,
		IndexCacheTTL: 20 * time.Second,
		MaxUploadSize: 10 * 1024 * 1024,
		LoginURL:      "/auth/login/",
		JWTSecretKey:  "test-secret",
		TokenDuration: time.Hour,
	}

	h := &handlers.Handlers{
		AuthService:    deps.authService,
		PostService:    deps.postService,
		CommentService: deps.commentService,
		FollowService:  deps.followService,
		UserRepo:       deps.userRepo,
		GroupRepo:      deps.groupRepo,
		PostRepo:       deps.postRepo,
		CommentRepo:    deps.commentRepo,
		Cache:          deps.cache,
		Cfg:            cfg,
		Validate:       validator.New(),
	}

	return h, deps
}

func withUser(r *http.Request, userID, username string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, "userID", userID)
	ctx = context.WithValue(ctx, "username", username)
	return r.WithContext(ctx)
}
