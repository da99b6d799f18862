package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/repeto/placement-board/internal/cache"
	"github.com/repeto/placement-board/internal/config"
	"github.com/repeto/placement-board/internal/database"
	"github.com/repeto/placement-board/internal/handlers"
	"github.com/repeto/placement-board/internal/middleware"
	"github.com/repeto/placement-board/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer database.Close(db)

	catalogCache := cache.NewCatalog(cfg.RedisAddress)

	listingService := services.NewListingService(db)
	categoryService := services.NewCategoryService(db, catalogCache)

	jobHandler := handlers.NewJobPostingHandler(listingService)
	projectHandler := handlers.NewProjectHandler(listingService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Public read paths
		api.GET("/categories", categoryHandler.List)
		api.GET("/job-postings", jobHandler.List)
		api.GET("/projects", projectHandler.List)
	}

	authed := api.Group("", middleware.Auth(cfg.JWTSecret))
	{
		authed.POST("/job-postings", jobHandler.Create)
		authed.PUT("/job-postings", jobHandler.Update)
		authed.DELETE("/job-postings", jobHandler.Delete)

		authed.POST("/projects", projectHandler.Create)
		authed.PUT("/projects", projectHandler.Update)
		authed.DELETE("/projects", projectHandler.Delete)

		authed.POST("/categories", categoryHandler.Create)
		authed.POST("/categories/:id/options", categoryHandler.AddOption)
		authed.DELETE("/categories/:id", categoryHandler.DeleteCategory)
		authed.DELETE("/options/:id", categoryHandler.DeleteOption)
	}

	log.Printf("Server starting on %s...", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
