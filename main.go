package main

import (
	"log"
	"strings"
	"time"

	"server/auth"
	"server/config"
	"server/db"
	"server/handlers"
	"server/models"
	"server/storage"
	"server/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	router.GET("/health", handlers.Health)

	// Everything under /v1 requires a verified bearer token
	authRouter := &auth.Router{Base: router}
	// User sync (idempotent, called once after sign-in)
	authRouter.POST("/v1/users", handlers.UserSync)
	// Album handlers
	authRouter.GET("/v1/albums", handlers.AlbumList)
	authRouter.POST("/v1/albums", handlers.AlbumCreate)
	authRouter.PUT("/v1/albums/:albumId", handlers.AlbumRename)
	authRouter.DELETE("/v1/albums/:albumId", handlers.AlbumDelete)
	// Media handlers
	authRouter.POST("/v1/media", handlers.MediaUpload)
	authRouter.GET("/v1/media/:albumId", handlers.MediaListByAlbum)
	authRouter.DELETE("/v1/media/:mediaId", handlers.MediaDelete)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
