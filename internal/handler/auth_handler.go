package handlers

import (
	"net/http"
	"strings"
	"time"
	"yatube/internal/models"
)

type SignupForm struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthFormResponse struct {
	Form   interface{}       `json:"form"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.Cfg.TokenDuration),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectTarget возвращает адрес возврата из параметра next.
// Внешние адреса не принимаются.
func redirectTarget(r *http.Request) string {
	next := r.URL.Query().Get("next")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// Signup - регистрация нового пользователя с немедленным входом.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		WriteSuccess(w, AuthFormResponse{Form: SignupForm{}}, http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	form := SignupForm{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if err := h.Validate.Struct(form); err != nil {
		WriteSuccess(w, AuthFormResponse{Form: form, Errors: fieldErrors(err)}, http.StatusBadRequest)
		return
	}

	req := models.CreateUserRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	}

	_, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		if strings.Contains(err.Error(), "уже существует") {
			errs := map[string]string{"username": "Имя пользователя занято"}
			WriteSuccess(w, AuthFormResponse{Form: form, Errors: errs}, http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, redirectTarget(r), http.StatusFound)
}

// Login - вход по имени пользователя и паролю. После входа возвращает
// на адрес из параметра next.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		WriteSuccess(w, AuthFormResponse{Form: LoginForm{}}, http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	form := LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if err := h.Validate.Struct(form); err != nil {
		WriteSuccess(w, AuthFormResponse{Form: form, Errors: fieldErrors(err)}, http.StatusBadRequest)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		errs := map[string]string{"password": "Неверное имя пользователя или пароль"}
		WriteSuccess(w, AuthFormResponse{Form: form, Errors: errs}, http.StatusBadRequest)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, redirectTarget(r), http.StatusFound)
}

// Logout сбрасывает cookie сессии.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// Health - проверка живости сервиса и БД.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
