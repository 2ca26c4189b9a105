package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makePosts(n int) []models.Post {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, models.Post{
			PostID:    fmt.Sprintf("post-%d", i),
			AuthorID:  "author-1",
			Author:    "leo",
			Text:      fmt.Sprintf("Текст поста %d", i),
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Duration(i) * time.Hour),
		})
	}
	return posts
}

func TestIndexPagination(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		offset        int
		returned      int
		expectedPage  int
		expectedTotal int
	}{
		{
			name:          "Первая страница содержит 10 постов",
			url:           "/",
			offset:        0,
			returned:      10,
			expectedPage:  1,
			expectedTotal: 2,
		},
		{
			name:          "Вторая страница содержит остаток",
			url:           "/?page=2",
			offset:        10,
			returned:      3,
			expectedPage:  2,
			expectedTotal: 2,
		},
		{
			name:          "Невалидный номер страницы дает первую",
			url:           "/?page=abc",
			offset:        0,
			returned:      10,
			expectedPage:  1,
			expectedTotal: 2,
		},
		{
			name:          "Номер за пределами дает последнюю страницу",
			url:           "/?page=99",
			offset:        10,
			returned:      3,
			expectedPage:  2,
			expectedTotal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandlers()

			deps.postRepo.On("CountAll", mock.Anything).Return(13, nil)
			deps.postRepo.On("ListAll", mock.Anything, 10, tt.offset).
				Return(makePosts(tt.returned), nil)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rr := httptest.NewRecorder()
			h.Index(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			var response struct {
				Posts      []models.Post `json:"posts"`
				Pagination struct {
					Page       int `json:"page"`
					Total      int `json:"total"`
					TotalPages int `json:"totalPages"`
				} `json:"pagination"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

			assert.Len(t, response.Posts, tt.returned)
			assert.Equal(t, tt.expectedPage, response.Pagination.Page)
			assert.Equal(t, 13, response.Pagination.Total)
			assert.Equal(t, tt.expectedTotal, response.Pagination.TotalPages)

			deps.postRepo.AssertExpectations(t)
		})
	}
}

func TestIndexCache(t *testing.T) {
	h, deps := newTestHandlers()

	// Репозиторий отвечает ровно один раз: второй запрос обязан
	// прийти из кэша, иначе мок уронит тест.
	deps.postRepo.On("CountAll", mock.Anything).Return(1, nil).Once()
	deps.postRepo.On("ListAll", mock.Anything, 10, 0).Return(makePosts(1), nil).Once()

	first := httptest.NewRecorder()
	h.Index(first, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.Index(second, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes(),
		"в пределах TTL ответы должны совпадать байт в байт")

	// После явной очистки кэша новый пост виден
	require.NoError(t, deps.cache.Clear(context.Background(), "index_page:"))

	deps.postRepo.On("CountAll", mock.Anything).Return(2, nil).Once()
	deps.postRepo.On("ListAll", mock.Anything, 10, 0).Return(makePosts(2), nil).Once()

	third := httptest.NewRecorder()
	h.Index(third, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, third.Code)

	assert.NotEqual(t, first.Body.Bytes(), third.Body.Bytes())
	deps.postRepo.AssertExpectations(t)
}

func TestGroupPostsNotFound(t *testing.T) {
	h, deps := newTestHandlers()

	deps.groupRepo.On("GetBySlug", mock.Anything, "nope").
		Return(nil, fmt.Errorf("группа nope: %w", repository.ErrNotFound))

	req := httptest.NewRequest(http.MethodGet, "/group/nope/", nil)
	req = mux.SetURLVars(req, map[string]string{"slug": "nope"})
	rr := httptest.NewRecorder()
	h.GroupPosts(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "/group/nope/")
}

func TestGroupPostsListsOnlyGroup(t *testing.T) {
	h, deps := newTestHandlers()

	group := &models.Group{GroupID: "g-a", Title: "Книги", Slug: "books"}
	deps.groupRepo.On("GetBySlug", mock.Anything, "books").Return(group, nil)
	deps.postRepo.On("CountByGroup", mock.Anything, "g-a").Return(2, nil)
	deps.postRepo.On("ListByGroup", mock.Anything, "g-a", 10, 0).
		Return(makePosts(2), nil)

	req := httptest.NewRequest(http.MethodGet, "/group/books/", nil)
	req = mux.SetURLVars(req, map[string]string{"slug": "books"})
	rr := httptest.NewRecorder()
	h.GroupPosts(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	deps.postRepo.AssertExpectations(t)
}

func TestProfileFollowingFlag(t *testing.T) {
	tests := []struct {
		name      string
		viewerID  string
		following bool
	}{
		{name: "Подписанный видит following=true", viewerID: "viewer-1", following: true},
		{name: "Не подписанный видит following=false", viewerID: "viewer-2", following: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandlers()

			author := &models.User{UserID: "author-1", Username: "leo"}
			deps.userRepo.On("GetUserByUsername", mock.Anything, "leo").Return(author, nil)
			deps.postRepo.On("CountByAuthor", mock.Anything, "author-1").Return(3, nil)
			deps.postRepo.On("ListByAuthor", mock.Anything, "author-1", 10, 0).
				Return(makePosts(3), nil)
			deps.followService.On("IsFollowing", mock.Anything, tt.viewerID, "author-1").
				Return(tt.following, nil)

			req := httptest.NewRequest(http.MethodGet, "/leo/", nil)
			req = withUser(req, tt.viewerID, "viewer")
			req = mux.SetURLVars(req, map[string]string{"username": "leo"})
			rr := httptest.NewRecorder()
			h.Profile(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			var response struct {
				Count     int  `json:"count"`
				Following bool `json:"following"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
			assert.Equal(t, 3, response.Count)
			assert.Equal(t, tt.following, response.Following)
		})
	}
}

func TestPostDetailNotFound(t *testing.T) {
	h, deps := newTestHandlers()

	deps.postRepo.On("GetByAuthorAndID", mock.Anything, "leo", "missing").
		Return(nil, fmt.Errorf("пост missing автора leo: %w", repository.ErrNotFound))

	req := httptest.NewRequest(http.MethodGet, "/leo/missing/", nil)
	req = mux.SetURLVars(req, map[string]string{"username": "leo", "post_id": "missing"})
	rr := httptest.NewRecorder()
	h.PostDetail(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFollowIndex(t *testing.T) {
	h, deps := newTestHandlers()

	deps.postRepo.On("CountFeed", mock.Anything, "viewer-1").Return(3, nil)
	deps.postRepo.On("ListFeed", mock.Anything, "viewer-1", 10, 0).
		Return(makePosts(3), nil)

	req := httptest.NewRequest(http.MethodGet, "/follow/", nil)
	req = withUser(req, "viewer-1", "viewer")
	rr := httptest.NewRecorder()
	h.FollowIndex(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Len(t, response.Posts, 3)
}
