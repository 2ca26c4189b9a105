package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PostForm - поля формы создания/редактирования поста.
// Группа и картинка необязательны.
type PostForm struct {
	Text  string `json:"text" validate:"required"`
	Group string `json:"group"`
}

// CommentForm - поля формы комментария.
type CommentForm struct {
	Text string `json:"text" validate:"required"`
}

type uploadedFile struct {
	file   multipart.File
	header *multipart.FileHeader
}

// parsePostForm читает поля формы и необязательный файл image.
// Поддерживаются multipart и urlencoded формы.
func (h *Handlers) parsePostForm(r *http.Request) (PostForm, *uploadedFile, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			return PostForm{}, nil, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return PostForm{}, nil, err
		}
	}

	form := PostForm{
		Text:  r.FormValue("text"),
		Group: r.FormValue("group"),
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return form, nil, nil
		}
		return form, nil, err
	}

	return form, &uploadedFile{file: file, header: header}, nil
}

func (h *Handlers) parseCommentForm(r *http.Request) (CommentForm, error) {
	if err := r.ParseForm(); err != nil {
		return CommentForm{}, err
	}

	return CommentForm{Text: r.FormValue("text")}, nil
}

// fieldErrors переводит ошибки валидатора в сообщения по полям формы.
func fieldErrors(err error) map[string]string {
	result := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		result["form"] = "Неверные данные формы"
		return result
	}

	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			result[field] = "Обязательное поле"
		case "email":
			result[field] = "Неверный формат email"
		case "min":
			result[field] = "Значение слишком короткое"
		default:
			result[field] = "Неверное значение"
		}
	}

	return result
}
