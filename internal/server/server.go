package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"treehole/internal/config"
	"treehole/internal/handler"
	authHandler "treehole/internal/handler/auth"
	commentHandler "treehole/internal/handler/comment"
	feedHandler "treehole/internal/handler/feed"
	postHandler "treehole/internal/handler/post"
	profileHandler "treehole/internal/handler/profile"
	"treehole/internal/model"
	"treehole/internal/pkg/cache"
	"treehole/internal/pkg/mail"
	"treehole/internal/pkg/mongodb"
	"treehole/internal/pkg/prefs"
	"treehole/internal/pkg/storage"
	"treehole/internal/pkg/storagefactory"
	"treehole/internal/repository"
	"treehole/internal/server/middleware"
	"treehole/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
	feed   *service.PostSession
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 初始化 MongoDB (可选)
	var mongoClient *mongodb.Client
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without it")
		} else {
			mongoClient = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			// 创建索引
			models := []mongodb.Model{&model.Post{}, &model.Comment{}, &model.User{}, &model.Identity{}}
			if err := mongodb.EnsureAllIndexes(context.Background(), mongoClient.Database(), models...); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if s.mongo == nil {
		log.Warn().Msg("MongoDB not configured, API endpoints disabled")
		return
	}
	db := s.mongo.Database()

	// 匿名帖子索引：有Redis用Redis，否则进程内存
	var index prefs.Store
	if s.redis != nil {
		index = prefs.NewRedisStore(s.redis.Client())
	} else {
		index = prefs.NewMemoryStore()
		log.Warn().Msg("Redis not configured, anonymous post index is in-memory only")
	}

	// 头像存储 (可选)
	var store storage.Storage
	if s.cfg.Storage.Type != "" {
		st, err := storagefactory.NewStorage(&s.cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize storage, avatar upload disabled")
		} else {
			store = st
			log.Info().Str("type", st.GetStorageType()).Msg("initialized storage")
		}
	}

	// 仓库与服务
	postRepo := repository.NewPostRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	userRepo := repository.NewUserRepo(db)
	identityRepo := repository.NewIdentityRepo(db)

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}

	authSvc := service.NewAuthService(
		identityRepo,
		userRepo,
		jwtSecret,
		accessTokenExpiry,
		mail.NewSender(&s.cfg.Mail),
	)

	// 共享帖子流会话，驱动WebSocket推送
	s.feed = service.NewPostSession(postRepo, index, service.Session{Anonymous: true}, s.feedOptions())

	authHdl := authHandler.NewHandler(authSvc)
	postHdl := postHandler.NewHandler(postRepo, index, s.feed, s.feedOptions().PageSize)
	commentHdl := commentHandler.NewHandler(commentRepo, postRepo)
	profileHdl := profileHandler.NewHandler(userRepo, store)
	feedHdl := feedHandler.NewHandler(s.feed)

	// WebSocket 帖子流推送
	s.engine.GET("/ws/feed", feedHdl.Serve)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		// 认证接口（公开）
		v1.POST("/auth/register", authHdl.Register)
		v1.POST("/auth/login", authHdl.Login)
		v1.POST("/auth/anonymous", authHdl.Anonymous)
		v1.POST("/auth/verify", authHdl.VerifyEmail)

		// 帖子与资料读取（公开）
		v1.GET("/posts", postHdl.ListPosts)
		v1.GET("/posts/:id", postHdl.GetPost)
		v1.GET("/posts/:id/comments", commentHdl.ListComments)
		v1.GET("/users/:id", profileHdl.GetProfile)

		// 需要认证的接口（匿名Token也可通过，写操作按身份归属）
		auth := v1.Group("")
		auth.Use(middleware.Auth(authSvc.JWT()))
		{
			auth.POST("/auth/logout", authHdl.Logout)
			auth.GET("/auth/me", authHdl.GetMe)
			auth.POST("/auth/verify/send", authHdl.SendVerification)

			auth.POST("/posts", postHdl.CreatePost)
			auth.PUT("/posts/:id", postHdl.UpdatePost)
			auth.DELETE("/posts/:id", postHdl.DeletePost)
			auth.POST("/posts/:id/like", postHdl.LikePost)
			auth.GET("/posts/mine", postHdl.ListUserPosts)
			auth.GET("/posts/anonymous", postHdl.ListAnonymousPosts)

			auth.POST("/posts/:id/comments", commentHdl.AddComment)
			auth.DELETE("/posts/:id/comments/:comment_id", commentHdl.DeleteComment)

			auth.PUT("/users/me", profileHdl.UpdateProfile)
			auth.POST("/users/me/avatar", profileHdl.UploadAvatar)
		}
	}
}

// feedOptions 配置缺省时退回默认帖子流参数
func (s *Server) feedOptions() service.FeedOptions {
	opts := service.DefaultFeedOptions()
	if s.cfg.Feed.PageSize > 0 {
		opts.PageSize = s.cfg.Feed.PageSize
	}
	if s.cfg.Feed.RefreshInterval > 0 {
		opts.RefreshInterval = s.cfg.Feed.RefreshInterval
	}
	if s.cfg.Feed.EmptyRetries > 0 {
		opts.EmptyRetries = s.cfg.Feed.EmptyRetries
	}
	if s.cfg.Feed.RetryDelay > 0 {
		opts.RetryDelay = s.cfg.Feed.RetryDelay
	}
	return opts
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 帖子流会话的定时刷新
	feedCtx, cancelFeed := context.WithCancel(context.Background())
	defer cancelFeed()
	if s.feed != nil {
		go s.feed.Run(feedCtx)
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		// 关闭连接
		if s.mongo != nil {
			if err := s.mongo.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close MongoDB connection")
			}
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
