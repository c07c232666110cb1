package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/terralens/terralens-backend/internal/ai"
	"github.com/terralens/terralens-backend/internal/classify"
	"github.com/terralens/terralens-backend/internal/config"
	"github.com/terralens/terralens-backend/internal/handler"
	appmw "github.com/terralens/terralens-backend/internal/middleware"
	"github.com/terralens/terralens-backend/internal/repository"
	"github.com/terralens/terralens-backend/internal/service"
	"github.com/terralens/terralens-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(cfg *config.Config, db *gorm.DB, classifier ai.Classifier, photos *storage.PhotoStore) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	overrides, err := cfg.AwardOverrides()
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	scanRepo := repository.NewScanRepository(db)

	resolver := classify.NewResolver(cfg.PaperThreshold)
	awards := service.AwardSchedule{Default: cfg.DefaultAward, PerCategory: overrides}
	cooldown := time.Duration(cfg.CooldownSeconds) * time.Second

	accountSvc := service.NewAccountService(userRepo, []byte(cfg.JWTSecret))
	scanSvc := service.NewScanService(scanRepo, classifier, resolver, photos, awards, cooldown)
	boardSvc := service.NewLeaderboardService(userRepo)

	authHandler := handler.NewAuthHandler(accountSvc)
	scanHandler := handler.NewScanHandler(scanSvc)
	userHandler := handler.NewUserHandler(accountSvc, scanSvc)
	boardHandler := handler.NewLeaderboardHandler(boardSvc)

	authMw, err := appmw.NewAuthMiddleware(context.Background(), cfg.AuthMode, []byte(cfg.JWTSecret), userRepo)
	if err != nil {
		return nil, err
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/leaderboard", boardHandler.Top)
	api.POST("/scans/verify", scanHandler.Verify, authMw.RequireAuth)
	api.GET("/me", userHandler.Me, authMw.RequireAuth)
	api.GET("/me/scans", userHandler.ListScans, authMw.RequireAuth)

	return &Server{e: e}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
