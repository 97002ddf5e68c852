package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	handlerHttp "github.com/mapmark/pinpoint/internal/handler/http"
	"github.com/mapmark/pinpoint/internal/handler/http/middleware"
	redisclient "github.com/mapmark/pinpoint/internal/infrastructure/cache"
	"github.com/mapmark/pinpoint/internal/infrastructure/config"
	database "github.com/mapmark/pinpoint/internal/infrastructure/database"
	"github.com/mapmark/pinpoint/internal/infrastructure/jwt"
	"github.com/mapmark/pinpoint/internal/infrastructure/logger"
	passwordservice "github.com/mapmark/pinpoint/internal/infrastructure/password_service"
	"github.com/mapmark/pinpoint/internal/infrastructure/realtime"
	"github.com/mapmark/pinpoint/internal/infrastructure/repository/mongodb"
	"github.com/mapmark/pinpoint/internal/infrastructure/store"
	"github.com/mapmark/pinpoint/internal/infrastructure/uuidgen"
	"github.com/mapmark/pinpoint/internal/infrastructure/validator"
	"github.com/mapmark/pinpoint/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	appLogger := logger.NewLogger(appConfig.GetLogLevel(), appConfig.GetAppEnv(), appConfig.GetInstanceID())
	if err := appConfig.Validate(); err != nil {
		appLogger.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(ctx, appConfig.GetMongoURI())
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	db := mongoClient.Client.Database(appConfig.GetMongoDBName())
	if err := database.EnsureIndexes(ctx, db); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Repositories
	userRepo := mongodb.NewMongoUserRepository(db.Collection("users"))
	conversationRepo := mongodb.NewConversationRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	adRepo := mongodb.NewAdRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	photoStore, err := mongodb.NewGridFSPhotoStore(db)
	if err != nil {
		appLogger.Fatalf("Failed to open photo store: %v", err)
	}

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	jwtManager, err := jwt.NewJWTManager(appConfig.GetJWTSecret(), appConfig.GetAccessTokenExpiry())
	if err != nil {
		appLogger.Fatalf("Failed to configure tokens: %v", err)
	}
	jwtService := jwt.NewJWTService(jwtManager)
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	// Dependency Injection: Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, hasher, jwtService, appLogger, appValidator, uuidGenerator)
	messagingUsecase := usecase.NewMessagingUsecase(conversationRepo, messageRepo, userRepo, uuidGenerator, appLogger, appConfig)
	reviewUsecase := usecase.NewReviewUsecase(reviewRepo, userRepo, photoStore, uuidGenerator, appLogger, appConfig)
	adUsecase := usecase.NewAdUsecase(adRepo, uuidGenerator, appLogger, appConfig)
	postUsecase := usecase.NewPostUsecase(postRepo, userRepo, uuidGenerator, appLogger, appConfig)

	// Optional Dependency Injection: Redis presence and nearby cache
	var presence contract.IPresenceRegistry = realtime.NewMemoryPresenceRegistry()
	if redisURL := appConfig.GetRedisURL(); redisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(ctx, redisURL)
		if err != nil {
			appLogger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisclient.Close(rdb)
		redisPresence := store.NewRedisPresenceRegistry(rdb)
		stale, err := redisPresence.PurgeInstance(ctx, appConfig.GetInstanceID())
		if err != nil {
			appLogger.Fatalf("Failed to purge stale presence: %v", err)
		}
		for _, userID := range stale {
			if err := userUsecase.SetPresence(ctx, userID, false); err != nil {
				appLogger.Warnf("Failed to reset presence of %s: %v", userID, err)
			}
		}
		if len(stale) > 0 {
			appLogger.Infof("Cleared %d stale presence entries", len(stale))
		}
		presence = redisPresence
		reviewUsecase.SetNearbyCache(store.NewNearbyReviewCache(rdb, appConfig.GetNearbyCacheTTL()))
		appLogger.Infof("Redis enabled for presence and nearby review cache")
	}

	hub := realtime.NewHub(appConfig.GetInstanceID(), userUsecase, messagingUsecase, presence, appLogger)
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		_ = hub.RunWithContext(ctx)
	}()

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(appLogger.Zerolog()), gin.Recovery())

	// Setup API routes
	appRouter := handlerHttp.NewRouter(
		userUsecase, messagingUsecase, reviewUsecase, adUsecase, postUsecase,
		hub, hub, presence, mongoClient, appConfig,
	)
	appRouter.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + appConfig.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("Server running on port %s", appConfig.GetPort())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Graceful shutdown failed: %v", err)
	}
	<-hubDone
}
