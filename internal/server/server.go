package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sadi-dev/skillhub/backend/internal/database"
	"github.com/sadi-dev/skillhub/backend/internal/handlers"
	"github.com/sadi-dev/skillhub/backend/internal/middleware"
	"github.com/sadi-dev/skillhub/backend/internal/notify"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Initialize database
	db := database.New()

	// Create unified handler
	handler := handlers.NewHandler(db.GetDB(), notify.NewFromEnv())

	// Create server instance
	newServer := &Server{
		db:      db,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads; listings pick up the viewer identity when present
		// so each row carries whether this viewer voted.
		public := api.Group("")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/contents", s.handler.Content.List)
			public.GET("/contents/:id", s.handler.Content.Get)
			public.GET("/contents/topics", s.handler.Topic.List)
			public.GET("/projects", s.handler.Project.List)
			public.GET("/projects/:id", s.handler.Project.Get)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.PUT("/contents/:id/vote", s.handler.Content.Vote)

			protected.POST("/projects/:id/responses", s.handler.Project.CreateResponse)
			protected.GET("/projects/:id/responses", s.handler.Project.ListResponses)
			protected.GET("/responses/:responseId", s.handler.Project.GetResponse)
			protected.PUT("/responses/:responseId/verify", s.handler.Project.VerifyResponse)

			protected.PUT("/users", s.handler.User.UpdateInfo)
			protected.GET("/users", s.handler.User.GetInfo)
			protected.GET("/users/leaderboard", s.handler.User.Leaderboard)

			// Authoring surface (admin only; ownership still checked per item)
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/contents", s.handler.Content.Create)
				admin.PUT("/contents/:id", s.handler.Content.Update)
				admin.DELETE("/contents/:id", s.handler.Content.Delete)

				admin.POST("/contents/topics", s.handler.Topic.Create)
				admin.DELETE("/contents/topics/:id", s.handler.Topic.Delete)

				admin.POST("/projects", s.handler.Project.Create)
				admin.PUT("/projects/:id", s.handler.Project.Update)
				admin.DELETE("/projects/:id", s.handler.Project.Delete)
				admin.PUT("/projects/:id/priority", s.handler.Project.UpdatePriority)
			}
		}
	}

	return r
}
