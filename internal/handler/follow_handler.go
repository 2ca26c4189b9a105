package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"yatube/internal/repository"

	"github.com/gorilla/mux"
)

// ProfileFollow подписывает текущего пользователя на автора.
// Подписка на себя не создает ребра и уводит на собственный профиль;
// успешная подписка ведет на главную.
func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
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

	userID := r.Context().Value("userID").(string)

	if author.UserID == userID {
		http.Redirect(w, r, fmt.Sprintf("/%s/", username), http.StatusFound)
		return
	}

	if err := h.FollowService.Follow(r.Context(), userID, author.UserID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ProfileUnfollow снимает подписку и возвращает на профиль автора.
func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
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

	userID := r.Context().Value("userID").(string)

	if author.UserID != userID {
		if err := h.FollowService.Unfollow(r.Context(), userID, author.UserID); err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, fmt.Sprintf("/%s/", username), http.StatusFound)
}
