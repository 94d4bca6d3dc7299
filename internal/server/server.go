package server

import (
	"log"
	"os"
	"strings"
	"time"

	"pena.web.id/penablog/internal/middleware"
	"pena.web.id/penablog/pkg/storage"

	adminHttp "pena.web.id/penablog/internal/modules/admin/delivery/http"
	adminRepo "pena.web.id/penablog/internal/modules/admin/repository"
	adminService "pena.web.id/penablog/internal/modules/admin/service"

	categoryHttp "pena.web.id/penablog/internal/modules/category/delivery/http"
	categoryRepo "pena.web.id/penablog/internal/modules/category/repository"
	categoryService "pena.web.id/penablog/internal/modules/category/service"

	commentHttp "pena.web.id/penablog/internal/modules/comment/delivery/http"
	commentRepo "pena.web.id/penablog/internal/modules/comment/repository"
	commentService "pena.web.id/penablog/internal/modules/comment/service"

	feedHttp "pena.web.id/penablog/internal/modules/feed/delivery/http"
	feedRepo "pena.web.id/penablog/internal/modules/feed/repository"
	feedService "pena.web.id/penablog/internal/modules/feed/service"

	likeHttp "pena.web.id/penablog/internal/modules/like/delivery/http"
	likeRepo "pena.web.id/penablog/internal/modules/like/repository"
	likeService "pena.web.id/penablog/internal/modules/like/service"

	postHttp "pena.web.id/penablog/internal/modules/post/delivery/http"
	postRepo "pena.web.id/penablog/internal/modules/post/repository"
	postService "pena.web.id/penablog/internal/modules/post/service"

	profileHttp "pena.web.id/penablog/internal/modules/profile/delivery/http"
	profileRepo "pena.web.id/penablog/internal/modules/profile/repository"
	profileService "pena.web.id/penablog/internal/modules/profile/service"

	relationHttp "pena.web.id/penablog/internal/modules/relation/delivery/http"
	relationRepo "pena.web.id/penablog/internal/modules/relation/repository"
	relationService "pena.web.id/penablog/internal/modules/relation/service"

	reportHttp "pena.web.id/penablog/internal/modules/report/delivery/http"
	reportRepo "pena.web.id/penablog/internal/modules/report/repository"
	reportService "pena.web.id/penablog/internal/modules/report/service"

	userHttp "pena.web.id/penablog/internal/modules/user/delivery/http"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	userService "pena.web.id/penablog/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	users := userRepo.NewUserRepository(db)
	posts := postRepo.NewPostRepository(db)
	comments := commentRepo.NewCommentRepository(db)
	likes := likeRepo.NewLikeRepository(db)
	relations := relationRepo.NewRelationRepository(db)
	categories := categoryRepo.NewCategoryRepository(db)
	feeds := feedRepo.NewFeedRepository(db)
	profiles := profileRepo.NewProfileRepository(db)
	reports := reportRepo.NewReportRepository(db)
	admins := adminRepo.NewAdminRepository(db)
	logs := adminRepo.NewLogRepository(db)
	fetch := adminRepo.NewFetchRepository(db)

	userSvc := userService.NewUserService(users, imageStorage)
	userHandler := userHttp.NewUserHandler(userSvc)

	postSvc := postService.NewPostService(posts, users, comments, likes, relations, imageStorage, redisClient)
	postHandler := postHttp.NewPostHandler(postSvc)

	commentSvc := commentService.NewCommentService(comments, posts, users, relations, redisClient)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	likeSvc := likeService.NewLikeService(likes, posts, comments, users, relations)
	likeHandler := likeHttp.NewLikeHandler(likeSvc)

	relationSvc := relationService.NewRelationService(relations, users)
	relationHandler := relationHttp.NewRelationHandler(relationSvc)

	categorySvc := categoryService.NewCategoryService(categories)
	categoryHandler := categoryHttp.NewCategoryHandler(categorySvc)

	feedSvc := feedService.NewFeedService(feeds, users)
	feedHandler := feedHttp.NewFeedHandler(feedSvc)

	profileSvc := profileService.NewProfileService(profiles, posts, relations)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	reportSvc := reportService.NewReportService(reports, users, posts, comments, relations)
	reportHandler := reportHttp.NewReportHandler(reportSvc)

	adminHandler := adminHttp.NewAdminHandler(
		adminService.NewAdminAuthService(admins),
		adminService.NewAdminService(admins, logs),
		adminService.NewModerationService(users, posts, comments, logs),
		adminService.NewLogService(logs),
		adminService.NewFetchService(fetch),
	)

	router := gin.New()
	setupCORS(router)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	auth := middleware.NewAuthMiddleware(admins)

	api := router.Group("/api")

	// Session endpoints
	api.POST("/auth/signup", userHandler.Signup)
	api.POST("/auth/login", userHandler.Login)
	api.POST("/auth/logout", userHandler.Logout)

	// Public reads; an optional session enriches them with viewer state.
	public := api.Group("")
	public.Use(auth.OptionalUser())
	{
		public.GET("/feed", feedHandler.PublicFeed)
		public.GET("/explore", feedHandler.Explore)
		public.GET("/categories", categoryHandler.List)
		public.GET("/posts/slug/:slug", postHandler.GetBySlug)
		public.POST("/posts/:postId/views", postHandler.IncrementViews)
		public.GET("/profiles/:username", profileHandler.GetByUsername)
	}

	protected := api.Group("")
	protected.Use(auth.RequireUser())
	{
		protected.GET("/users/me", userHandler.Me)
		protected.PUT("/users/email", userHandler.UpdateEmail)
		protected.PUT("/users/username", userHandler.UpdateUsername)
		protected.PUT("/users/password", userHandler.ChangePassword)
		protected.PUT("/users/settings", userHandler.UpdateSettings)
		protected.PUT("/users/profile/avatar", userHandler.UpdateAvatar)
		protected.PUT("/users/profile/cover", userHandler.UpdateCover)
		protected.PUT("/users/profile/bio", userHandler.UpdateBio)
		protected.PUT("/users/profile/nationality", userHandler.UpdateNationality)
		protected.PUT("/users/profile/display-name", userHandler.UpdateDisplayName)
		protected.PUT("/users/profile/socials", userHandler.UpdateSocials)

		protected.GET("/feed/me", feedHandler.PrivateFeed)

		protected.POST("/posts", postHandler.Create)
		protected.GET("/posts/me", postHandler.ListMine)
		protected.POST("/posts/images", postHandler.UploadImage)
		protected.GET("/posts/slug/:slug/author", postHandler.GetAuthorView)
		protected.GET("/posts/:postId/edit", postHandler.GetForEditing)
		protected.PUT("/posts/:postId", postHandler.Update)
		protected.PUT("/posts/:postId/content", postHandler.SaveContent)
		protected.DELETE("/posts/:postId/cover", postHandler.RemoveCoverImage)
		protected.PATCH("/posts/:postId/publish", postHandler.TogglePublish)
		protected.PATCH("/posts/:postId/trash", postHandler.ToggleTrash)
		protected.DELETE("/posts/:postId", postHandler.PermanentDelete)

		protected.POST("/posts/:postId/comments", commentHandler.Create)
		protected.PUT("/comments/:commentId", commentHandler.Update)
		protected.DELETE("/comments/:commentId", commentHandler.Delete)

		protected.POST("/posts/:postId/like", likeHandler.TogglePostLike)
		protected.POST("/comments/:commentId/like", likeHandler.ToggleCommentLike)

		protected.POST("/subscriptions/:subscribedId", relationHandler.ToggleSubscription)
		protected.POST("/blocks/:blockedId", relationHandler.ToggleBlock)

		protected.POST("/reports", reportHandler.Create)
	}

	api.POST("/admin/auth/login", adminHandler.Login)
	api.POST("/admin/auth/logout", adminHandler.Logout)

	adminGroup := api.Group("/admin")
	adminGroup.Use(auth.RequireAdmin())
	{
		adminGroup.GET("/me", adminHandler.Me)
		adminGroup.PUT("/me", adminHandler.Update)

		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.PATCH("/users/:userId/suspend", adminHandler.SuspendUser)
		adminGroup.PATCH("/users/:userId/unsuspend", adminHandler.UnsuspendUser)

		adminGroup.GET("/posts", adminHandler.ListPosts)
		adminGroup.PATCH("/posts/:postId/suspend", adminHandler.SuspendPost)
		adminGroup.PATCH("/posts/:postId/unsuspend", adminHandler.UnsuspendPost)

		adminGroup.DELETE("/comments/:commentId", adminHandler.DeleteComment)

		adminGroup.GET("/reports", reportHandler.List)
		adminGroup.PATCH("/reports/:reportId", reportHandler.UpdateStatus)

		adminGroup.POST("/categories", categoryHandler.Create)
		adminGroup.PUT("/categories/:categoryId", categoryHandler.Update)
		adminGroup.DELETE("/categories/:categoryId", categoryHandler.Delete)

		adminGroup.GET("/logs", adminHandler.ListLogs)
		adminGroup.GET("/logs/:logId", adminHandler.GetLog)
		adminGroup.PUT("/logs/:logId", adminHandler.UpdateLog)

		super := adminGroup.Group("")
		super.Use(auth.RequireSuperAdmin())
		{
			super.GET("/admins", adminHandler.List)
			super.POST("/admins", adminHandler.Create)
			super.DELETE("/admins/:adminId", adminHandler.Delete)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
