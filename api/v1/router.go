package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/middleware"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", Register)
		authGroup.POST("/login", Login)
		authGroup.POST("/logout", Logout)
		// Refresh needs a still-valid token
		authGroup.POST("/refresh", middleware.AuthMiddleware(), Refresh)
	}

	// Everything below requires authentication
	authed := router.Group("")
	authed.Use(middleware.AuthMiddleware())

	authed.GET("/dashboard", GetDashboard)

	userGroup := authed.Group("/users")
	{
		userGroup.GET("/profile", GetProfile)
		userGroup.PUT("/profile", UpdateProfile)
	}

	taskGroup := authed.Group("/tasks")
	{
		taskGroup.GET("", ListTasks)
		taskGroup.POST("", CreateTask)
		taskGroup.GET("/:id", GetTask)
		taskGroup.PUT("/:id", UpdateTask)
		taskGroup.PATCH("/:id/status", UpdateTaskStatus)
		taskGroup.DELETE("/:id", DeleteTask)
		taskGroup.GET("/:id/comments", ListComments)
		taskGroup.POST("/:id/comments", AddComment)
	}

	projectGroup := authed.Group("/projects")
	{
		projectGroup.GET("", ListProjects)
		projectGroup.POST("", CreateProject)
		projectGroup.GET("/:id", GetProject)
		projectGroup.PUT("/:id", UpdateProject)
		projectGroup.DELETE("/:id", DeleteProject)
		projectGroup.GET("/:id/members", ListMembers)
		projectGroup.POST("/:id/members", AddMember)
		projectGroup.DELETE("/:id/members/:userId", RemoveMember)
	}

	tagGroup := authed.Group("/tags")
	{
		tagGroup.GET("", ListTags)
		tagGroup.POST("", CreateTag)
		tagGroup.GET("/:id", GetTag)
		tagGroup.PUT("/:id", UpdateTag)
		tagGroup.DELETE("/:id", DeleteTag)
	}

	timeGroup := authed.Group("/time-entries")
	{
		timeGroup.GET("", ListTimeEntries)
		timeGroup.POST("", CreateTimeEntry)
		timeGroup.POST("/start", StartTimer)
		timeGroup.POST("/stop", StopTimer)
		timeGroup.GET("/active", GetActiveTimer)
		timeGroup.GET("/stats", GetTimeStats)
		timeGroup.PUT("/:id", UpdateTimeEntry)
		timeGroup.DELETE("/:id", DeleteTimeEntry)
	}
}
