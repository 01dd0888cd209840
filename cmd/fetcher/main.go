package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dcosodev/news-hub/db"
	"github.com/dcosodev/news-hub/internal/config"
	"github.com/dcosodev/news-hub/internal/model"
	"github.com/dcosodev/news-hub/internal/reconciler"
	"github.com/dcosodev/news-hub/internal/repository"
	"github.com/dcosodev/news-hub/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	conn, driver, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	if err := db.Prepare(conn, driver, cfg.ResetDatabase); err != nil {
		log.Fatalf("error preparing DB: %v", err)
	}

	client, err := news.NewClient(cfg.News)
	if err != nil {
		log.Fatalf("error creating news client: %v", err)
	}

	if cfg.News.APIKey == "" {
		slog.Error("no news source API key configured", "provider", cfg.News.Provider)
		return
	}

	ctx := context.Background()

	repo := repository.NewArticleRepository(conn)
	if err := repo.SeedCategories(ctx, model.Categories); err != nil {
		log.Fatalf("error seeding categories: %v", err)
	}

	fetched, err := reconciler.New(repo, client).Refresh(ctx)
	if err != nil {
		slog.Error("error reconciling articles", "source", client.Name(), "error", err)
		os.Exit(1)
	}

	for category, articles := range fetched {
		slog.Info("fetch complete", "source", client.Name(), "category", category, "fetched", len(articles))
	}
}
