package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	v1 "github.com/taskmanager-pro/api/v1"
	"github.com/taskmanager-pro/config"
	"github.com/taskmanager-pro/database"
)

func newRouter() *gin.Engine {
	if !config.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())

	// Panics must still produce the JSON envelope, never a raw dump
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}))

	// CORS configuration for the SPA
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	v1.RegisterRoutes(api)

	return router
}

func serve() error {
	database.Initialize()

	router := newRouter()
	port := config.GetEnv("PORT", "8080")

	log.Printf("🚀 Task Manager API starting on port %s", port)
	return router.Run(":" + port)
}

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "taskmanager-api",
		Short: "Task Manager Pro backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			database.Initialize()
			log.Println("✅ Schema migrated")
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
