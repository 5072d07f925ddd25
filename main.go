package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v62/github"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"github.com/noft/catalog/pkg/config"
	"github.com/noft/catalog/pkg/handlers"
	"github.com/noft/catalog/pkg/middleware"
	"github.com/noft/catalog/pkg/repository"
	"github.com/noft/catalog/pkg/sale"
	"github.com/noft/catalog/pkg/store"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

func main() {
	cfg := config.Load()

	docStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}

	h := handlers.New(
		repository.NewProductRepository(docStore),
		sale.NewEngine(docStore),
		cfg.StoreTimeout,
	)

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/sale", h.GetSale)

	admin := r.Group("/")
	admin.Use(middleware.RequireAdmin(cfg.AdminToken))
	{
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
		admin.PUT("/sale", h.SetSale)
	}

	log.Printf("Server running on http://localhost:%s (store: %s)", cfg.Port, cfg.StoreBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("CRITICAL: server stopped: %v", err)
	}
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendGitHub:
		httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.GitHubToken},
		))
		client := github.NewClient(httpClient)
		return store.NewGitHubStore(client, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch, cfg.GitHubDir), nil
	case config.BackendFile:
		return store.NewFileStore(cfg.DataDir), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND: %q", cfg.StoreBackend)
	}
}
