package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
)

// Группы заводятся административно: пользователи выбирают из готового списка.
var defaultGroups = []models.Group{
	{Title: "Путешествия", Slug: "travel", Description: "Рассказы о поездках"},
	{Title: "Книги", Slug: "books", Description: "Что читаем"},
	{Title: "Кухня", Slug: "cooking", Description: "Рецепты и кухни мира"},
	{Title: "Технологии", Slug: "tech", Description: "Про софт и железо"},
}

func main() {
	demo := flag.Bool("demo", false, "создать демо-пользователей с постами и комментариями")
	demoUsers := flag.Int("users", 5, "число демо-пользователей")
	demoPosts := flag.Int("posts", 20, "число демо-постов")
	flag.Parse()

	cfg := config.LoadConfig()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer db.CloseDB()

	repo := repository.NewRepository(db.DB)
	ctx := context.Background()

	seedGroups(ctx, repo)

	if *demo {
		seedDemo(ctx, repo, *demoUsers, *demoPosts)
	}

	log.Println("Сидирование завершено")
}

func seedGroups(ctx context.Context, repo *repository.Repository) {
	for _, group := range defaultGroups {
		g := group
		if _, err := repo.Group.GetBySlug(ctx, g.Slug); err == nil {
			continue
		}
		if err := repo.Group.Create(ctx, &g); err != nil {
			log.Printf("Внимание: группа %s не создана: %v", g.Slug, err)
			continue
		}
		log.Printf("Создана группа: %s (%s)", g.Title, g.Slug)
	}
}

func seedDemo(ctx context.Context, repo *repository.Repository, userCount, postCount int) {
	gofakeit.Seed(time.Now().UnixNano())

	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := &models.User{
			Username: strings.ToLower(gofakeit.Username()),
			Email:    gofakeit.Email(),
		}
		if err := repo.User.CreateUser(ctx, user, "password123"); err != nil {
			log.Printf("Внимание: пользователь не создан: %v", err)
			continue
		}
		users = append(users, user)
	}

	if len(users) == 0 {
		log.Println("Демо-пользователи не созданы, пропускаем посты")
		return
	}

	groups, err := repo.Group.List(ctx)
	if err != nil {
		log.Printf("Внимание: группы не прочитаны: %v", err)
	}

	posts := make([]*models.Post, 0, postCount)
	for i := 0; i < postCount; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		post := &models.Post{
			AuthorID: author.UserID,
			Text:     gofakeit.Paragraph(1, 3, 8, "\n"),
		}
		if len(groups) > 0 && gofakeit.Bool() {
			groupID := groups[gofakeit.Number(0, len(groups)-1)].GroupID
			post.GroupID = &groupID
		}
		if err := repo.Post.Create(ctx, post); err != nil {
			log.Printf("Внимание: пост не создан: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	for _, post := range posts {
		if !gofakeit.Bool() {
			continue
		}
		commenter := users[gofakeit.Number(0, len(users)-1)]
		comment := &models.Comment{
			PostID:   post.PostID,
			AuthorID: commenter.UserID,
			Text:     gofakeit.Sentence(10),
		}
		if err := repo.Comment.Create(ctx, comment); err != nil {
			log.Printf("Внимание: комментарий не создан: %v", err)
		}
	}

	for _, follower := range users {
		author := users[gofakeit.Number(0, len(users)-1)]
		if author.UserID == follower.UserID {
			continue
		}
		if err := repo.Follow.Create(ctx, follower.UserID, author.UserID); err != nil {
			log.Printf("Внимание: подписка не создана: %v", err)
		}
	}

	fmt.Printf("Создано: %d пользователей, %d постов\n", len(users), len(posts))
}
