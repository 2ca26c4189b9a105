package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"

	"github.com/gorilla/mux"
)

type PostFormResponse struct {
	Form   PostForm          `json:"form"`
	Groups []models.Group    `json:"groups"`
	Switch string            `json:"switch"`
	Errors map[string]string `json:"errors,omitempty"`
}

// resolveGroup переводит slug из формы в ID группы.
// Пустой slug означает пост без группы.
func (h *Handlers) resolveGroup(ctx context.Context, slug string) (*string, error) {
	if slug == "" {
		return nil, nil
	}

	group, err := h.GroupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return &group.GroupID, nil
}

func (h *Handlers) listGroups(ctx context.Context) []models.Group {
	groups, err := h.GroupRepo.List(ctx)
	if err != nil || groups == nil {
		return []models.Group{}
	}
	return groups
}

// NewPost - создание поста. GET отдает пустую форму, POST создает пост
// от имени аутентифицированного пользователя и ведет на главную.
func (h *Handlers) NewPost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		response := PostFormResponse{
			Form:   PostForm{},
			Groups: h.listGroups(r.Context()),
			Switch: "new",
		}
		WriteSuccess(w, response, http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, file, err := h.parsePostForm(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.file.Close()
	}

	if err := h.Validate.Struct(form); err != nil {
		response := PostFormResponse{
			Form:   form,
			Groups: h.listGroups(r.Context()),
			Switch: "new",
			Errors: fieldErrors(err),
		}
		WriteSuccess(w, response, http.StatusBadRequest)
		return
	}

	groupID, err := h.resolveGroup(r.Context(), form.Group)
	if err != nil {
		response := PostFormResponse{
			Form:   form,
			Groups: h.listGroups(r.Context()),
			Switch: "new",
			Errors: map[string]string{"group": "Группа не найдена"},
		}
		WriteSuccess(w, response, http.StatusBadRequest)
		return
	}

	// Автор всегда текущий пользователь, что бы ни пришло в форме
	authorID := r.Context().Value("userID").(string)

	serviceReq := service.CreatePostRequest{
		AuthorID: authorID,
		Text:     form.Text,
		GroupID:  groupID,
	}
	if file != nil {
		serviceReq.ImageName = file.header.Filename
		serviceReq.Image = file.file
		serviceReq.ImageSize = file.header.Size
	}

	_, err = h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// EditPost - редактирование поста. Не автор молча уводится на страницу
// поста без каких-либо изменений.
func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
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

	postURL := fmt.Sprintf("/%s/%s/", username, postID)

	userID := r.Context().Value("userID").(string)
	if userID != post.AuthorID {
		http.Redirect(w, r, postURL, http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		form := PostForm{Text: post.Text}
		if post.GroupSlug != nil {
			form.Group = *post.GroupSlug
		}
		response := PostFormResponse{
			Form:   form,
			Groups: h.listGroups(r.Context()),
			Switch: "edit",
		}
		WriteSuccess(w, response, http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, file, err := h.parsePostForm(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.file.Close()
	}

	if err := h.Validate.Struct(form); err != nil {
		response := PostFormResponse{
			Form:   form,
			Groups: h.listGroups(r.Context()),
			Switch: "edit",
			Errors: fieldErrors(err),
		}
		WriteSuccess(w, response, http.StatusBadRequest)
		return
	}

	groupID, err := h.resolveGroup(r.Context(), form.Group)
	if err != nil {
		response := PostFormResponse{
			Form:   form,
			Groups: h.listGroups(r.Context()),
			Switch: "edit",
			Errors: map[string]string{"group": "Группа не найдена"},
		}
		WriteSuccess(w, response, http.StatusBadRequest)
		return
	}

	serviceReq := service.EditPostRequest{
		Post:     post,
		EditorID: userID,
		Text:     form.Text,
		GroupID:  groupID,
	}
	if file != nil {
		serviceReq.ImageName = file.header.Filename
		serviceReq.Image = file.file
		serviceReq.ImageSize = file.header.Size
	}

	err = h.PostService.EditPost(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthor) {
			http.Redirect(w, r, postURL, http.StatusFound)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, postURL, http.StatusFound)
}
