package main

import (
	"fmt"
	"log"
	"net/http"
	"yatube/cmd/app"
	"yatube/internal/config"
	"yatube/internal/database"
	handlers "yatube/internal/handler"
	"yatube/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services, pageCache := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	handler := handlers.NewHandlers(repo, services, db, pageCache, cfg)

	auth := middleware.LoginRequired(cfg)

	// setting up routes
	router := mux.NewRouter()
	router.NotFoundHandler = handlers.NotFoundHandler()

	router.HandleFunc("/", handler.Index).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	router.HandleFunc("/auth/signup/", handler.Signup).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/auth/login/", handler.Login).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/auth/logout/", handler.Logout).Methods(http.MethodGet)

	router.HandleFunc("/group/{slug}/", handler.GroupPosts).Methods(http.MethodGet)

	router.Handle("/new/", auth(http.HandlerFunc(handler.NewPost))).
		Methods(http.MethodGet, http.MethodPost)
	router.Handle("/follow/", auth(http.HandlerFunc(handler.FollowIndex))).
		Methods(http.MethodGet)

	router.Handle("/{username}/follow/", auth(http.HandlerFunc(handler.ProfileFollow))).
		Methods(http.MethodGet)
	router.Handle("/{username}/unfollow/", auth(http.HandlerFunc(handler.ProfileUnfollow))).
		Methods(http.MethodGet)
	router.HandleFunc("/{username}/", handler.Profile).Methods(http.MethodGet)
	router.Handle("/{username}/{post_id}/edit/", auth(http.HandlerFunc(handler.EditPost))).
		Methods(http.MethodGet, http.MethodPost)
	router.Handle("/{username}/{post_id}/comment/", auth(http.HandlerFunc(handler.AddComment))).
		Methods(http.MethodPost)
	router.HandleFunc("/{username}/{post_id}/", handler.PostDetail).Methods(http.MethodGet)

	rateLimiter := middleware.NewRateLimiter(300, 30)

	handlerChain := middleware.Chain(
		router,
		middleware.Identify(cfg),
		rateLimiter.Middleware,
		middleware.LoggingMiddleware,
		middleware.RecoverMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
