package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"galleria/api/internal/cache"
	"galleria/api/internal/config"
	"galleria/api/internal/jobs"
	"galleria/api/internal/mediastore"
	"galleria/api/internal/middleware"
	"galleria/api/internal/repository"
	"galleria/api/internal/service"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	authService   *service.AuthService
	folderService *service.FolderService
	imageService  *service.ImageService
	db            *pgxpool.Pool
	cache         *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, store mediastore.MediaStore, cfg *config.AppConfig) HandlerSet {
	ownerRepo := repository.NewOwnerRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	imageRepo := repository.NewImageRepository(db)

	galleryCache := cache.NewGalleryCache(redisClient, log)
	queue := jobs.NewStreamQueue(redisClient, cfg.Jobs.Stream)

	auth := service.NewAuthService(ownerRepo, cfg, log)
	folders := service.NewFolderService(folderRepo, imageRepo, log)
	images := service.NewImageService(imageRepo, folderRepo, store, galleryCache, queue, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		authService:   auth,
		folderService: folders,
		imageService:  images,
		db:            db,
		cache:         redisClient,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", h.RegisterOwner)
	auth.POST("/login", h.Login)

	folders := v1.Group("/folders")
	folders.Use(middleware.Auth(h.cfg))
	folders.POST("", h.CreateFolder)
	folders.GET("", h.ListFolders)
	folders.GET("/:id", h.GetFolder)
	folders.PATCH("/:id/parent", h.MoveFolder)
	folders.DELETE("/:id", h.DeleteFolder)

	images := v1.Group("/images")
	images.Use(middleware.Auth(h.cfg))
	images.POST("", h.UploadImages)
	images.GET("", h.ListImages)
	images.GET("/all", h.ListAllImages)
	images.GET("/:id", h.GetImage)
	images.GET("/:id/download", h.DownloadImage)
	images.POST("/:id/rotate", h.RotateImage)
	images.PATCH("/:id", h.UpdateImageMetadata)
	images.PATCH("/:id/folder", h.MoveImage)
	images.DELETE("/:id", h.DeleteImage)
}
