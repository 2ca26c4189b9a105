package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/gorilla/mux"
)

type CommentSectionResponse struct {
	Form     CommentForm       `json:"form"`
	Comments []models.Comment  `json:"comments"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// AddComment прикрепляет комментарий к посту от имени текущего пользователя.
// При невалидной форме отдается секция комментариев с ошибками,
// уже существующие комментарии при этом сохраняются в ответе.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

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

	form, err := h.parseCommentForm(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(form); err != nil {
		comments, listErr := h.CommentRepo.ListByPost(r.Context(), post.PostID)
		if listErr != nil {
			WriteError(w, listErr.Error(), http.StatusInternalServerError)
			return
		}
		if comments == nil {
			comments = []models.Comment{}
		}

		response := CommentSectionResponse{
			Form:     form,
			Comments: comments,
			Errors:   fieldErrors(err),
		}
		WriteSuccess(w, response, http.StatusBadRequest)
		return
	}

	authorID := r.Context().Value("userID").(string)

	_, err = h.CommentService.AddComment(r.Context(), post.PostID, authorID, form.Text)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%s/%s/", username, postID), http.StatusFound)
}
