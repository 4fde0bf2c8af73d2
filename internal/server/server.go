package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/config"
	"github.com/macrolog/backend/internal/api"
	"github.com/macrolog/backend/internal/database"
	"github.com/macrolog/backend/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	db     *database.DB
	cfg    *config.Config
}

// NewServer creates a new server instance
func NewServer(db *database.DB, cfg *config.Config) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, db.DB, cfg.FoodAPIBaseURL)

	return &Server{
		router: router,
		db:     db,
		cfg:    cfg,
	}
}

// Router exposes the gin engine, used by tests to drive requests directly.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.router,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
