package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dcosodev/news-hub/db"
	"github.com/dcosodev/news-hub/internal/config"
	"github.com/dcosodev/news-hub/internal/handler"
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

	ctx := context.Background()

	conn, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("error preparing DB: %v", err)
	}
	defer conn.Close()

	client, err := news.NewClient(cfg.News)
	if err != nil {
		log.Fatalf("error creating news client: %v", err)
	}
	if cfg.News.APIKey == "" {
		slog.Warn("no API key configured for news provider", "provider", cfg.News.Provider)
	}

	var fallback news.NewsClient = client
	if cfg.RedisURL != "" {
		rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer rdb.Close()
		fallback = news.NewCachedClient(client, rdb, cfg.FallbackCacheTTL)
		slog.Info("fallback cache enabled", "ttl", cfg.FallbackCacheTTL.String())
	}

	articleRepo := repository.NewArticleRepository(conn)
	usageRepo := repository.NewUsageRepository(conn)

	newsHandler := handler.NewNewsHandler(articleRepo, reconciler.New(articleRepo, client), fallback)
	usageHandler := handler.NewUsageHandler(usageRepo)

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "urls", cfg.AllowedOrigins)
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	handler.Register(r, newsHandler, usageHandler)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// openStore connects, optionally wipes, migrates and seeds the store.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	conn, driver, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.Prepare(conn, driver, cfg.ResetDatabase); err != nil {
		conn.Close()
		return nil, err
	}

	if err := repository.NewArticleRepository(conn).SeedCategories(ctx, model.Categories); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("store ready", "driver", driver, "reset", cfg.ResetDatabase)
	return conn, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}

	return c
}
