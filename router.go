package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "LIBRARY-backend/docs"
	"LIBRARY-backend/internal/catalog"
	"LIBRARY-backend/internal/lending"
	"LIBRARY-backend/internal/platform/db"
	"LIBRARY-backend/internal/platform/middleware"
)

func newRouter(cfg *db.Config, conn *db.DB, loc *time.Location) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(slog.Default()), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == db.ModeDev {
		// CORS（開発中のみ必要）
		origins := cfg.Server.CORSOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:3000"}
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", "Location", middleware.HeaderRequestID},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス / API ドキュメント
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// /api/v1
	api := r.Group("/api/v1")
	catalog.RegisterRoutes(api, catalog.NewService(conn))
	lending.RegisterRoutes(api, lending.NewService(conn, loc))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})

	return r
}
