package service

import (
	"context"
	"yatube/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, userID, authorID string) error
	Unfollow(ctx context.Context, userID, authorID string) error
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
}

type followService struct {
	followRepo repository.FollowRepository
}

func NewFollowService(followRepo repository.FollowRepository) FollowService {
	return &followService{followRepo: followRepo}
}

// Follow создает подписку. Подписка на самого себя молча игнорируется.
func (f *followService) Follow(ctx context.Context, userID, authorID string) error {
	if userID == authorID {
		return nil
	}
	return f.followRepo.Create(ctx, userID, authorID)
}

func (f *followService) Unfollow(ctx context.Context, userID, authorID string) error {
	if userID == authorID {
		return nil
	}
	return f.followRepo.Delete(ctx, userID, authorID)
}

func (f *followService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	return f.followRepo.Exists(ctx, userID, authorID)
}
