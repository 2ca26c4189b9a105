package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/gorilla/mux"
)

// Префикс ключей кэша главной страницы.
const IndexCachePrefix = "index_page:"

type PageResponse struct {
	Posts      []models.Post      `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

type GroupPageResponse struct {
	Group      models.Group       `json:"group"`
	Posts      []models.Post      `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

type ProfileResponse struct {
	Author     AuthorResponse     `json:"author"`
	Posts      []models.Post      `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
	Count      int                `json:"count"`
	Following  bool               `json:"following"`
}

type AuthorResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type PostDetailResponse struct {
	Post     models.Post      `json:"post"`
	Author   AuthorResponse   `json:"author"`
	Count    int              `json:"count"`
	Comments []models.Comment `json:"comments"`
	Form     CommentForm      `json:"form"`
}

// Index - главная страница: все посты, новые сверху.
// Готовый ответ кэшируется на время IndexCacheTTL по строке запроса,
// поэтому свежий пост появляется на главной только после истечения кэша.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cacheKey := IndexCachePrefix + r.URL.RequestURI()
	if body, ok := h.Cache.Get(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
		return
	}

	total, err := h.PostRepo.CountAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pagination, limit, offset := h.paginate(r, total)

	posts, err := h.PostRepo.ListAll(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	body, err := json.Marshal(PageResponse{Posts: posts, Pagination: pagination})
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Cache.Set(r.Context(), cacheKey, body, h.Cfg.IndexCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// GroupPosts - посты одной группы по ее slug.
func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	group, err := h.GroupRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteNotFound(w, r.URL.Path)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	total, err := h.PostRepo.CountByGroup(r.Context(), group.GroupID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pagination, limit, offset := h.paginate(r, total)

	posts, err := h.PostRepo.ListByGroup(r.Context(), group.GroupID, limit, offset)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	WriteSuccess(w, GroupPageResponse{Group: *group, Posts: posts, Pagination: pagination}, http.StatusOK)
}

// Profile - страница автора: его посты, общее число и флаг подписки
// для смотрящего пользователя.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	author, err := h.UserRepo.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteNotFound(w, r.URL.Path)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	total, err := h.PostRepo.CountByAuthor(r.Context(), author.UserID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pagination, limit, offset := h.paginate(r, total)

	posts, err := h.PostRepo.ListByAuthor(r.Context(), author.UserID, limit, offset)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	following := false
	if viewerID, ok := r.Context().Value("userID").(string); ok {
		following, err = h.FollowService.IsFollowing(r.Context(), viewerID, author.UserID)
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	response := ProfileResponse{
		Author:     AuthorResponse{UserID: author.UserID, Username: author.Username},
		Posts:      posts,
		Pagination: pagination,
		Count:      total,
		Following:  following,
	}

	WriteSuccess(w, response, http.StatusOK)
}

// PostDetail - страница поста: сам пост, комментарии и пустая форма комментария.
// Пост ищется по паре (автор, id); несовпадение пары дает 404.
func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]
	postID := vars["post_id"]

	post, err := h.PostRepo.GetByAuthorAndID(r.Context(), username, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteNotFound(w, r.URL.Path)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	count, err := h.PostRepo.CountByAuthor(r.Context(), post.AuthorID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	comments, err := h.CommentRepo.ListByPost(r.Context(), post.PostID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	response := PostDetailResponse{
		Post:     *post,
		Author:   AuthorResponse{UserID: post.AuthorID, Username: post.Author},
		Count:    count,
		Comments: comments,
		Form:     CommentForm{},
	}

	WriteSuccess(w, response, http.StatusOK)
}

// FollowIndex - лента: посты авторов, на которых подписан пользователь.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	total, err := h.PostRepo.CountFeed(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pagination, limit, offset := h.paginate(r, total)

	posts, err := h.PostRepo.ListFeed(r.Context(), userID, limit, offset)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	WriteSuccess(w, PageResponse{Posts: posts, Pagination: pagination}, http.StatusOK)
}
