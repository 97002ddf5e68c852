package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/handler/http/middleware"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type Router struct {
	userHandler      *UserHandler
	messagingHandler *MessagingHandler
	reviewHandler    *ReviewHandler
	adHandler        *AdHandler
	postHandler      *PostHandler
	presenceHandler  *PresenceHandler
	realtimeHandler  *RealtimeHandler
	healthHandler    *HealthHandler
	userUsecase      usecasecontract.IUserUseCase
	config           usecasecontract.IConfigProvider
}

func NewRouter(
	userUsecase usecasecontract.IUserUseCase,
	messagingUsecase usecasecontract.IMessagingUseCase,
	reviewUsecase usecasecontract.IReviewUseCase,
	adUsecase usecasecontract.IAdUseCase,
	postUsecase usecasecontract.IPostUseCase,
	notifier usecasecontract.IRealtimeNotifier,
	hub ConnectionAttacher,
	presence contract.IPresenceRegistry,
	db Pinger,
	config usecasecontract.IConfigProvider,
) *Router {
	return &Router{
		userHandler:      NewUserHandler(userUsecase),
		messagingHandler: NewMessagingHandler(messagingUsecase, notifier),
		reviewHandler:    NewReviewHandler(reviewUsecase),
		adHandler:        NewAdHandler(adUsecase),
		postHandler:      NewPostHandler(postUsecase),
		presenceHandler:  NewPresenceHandler(presence, userUsecase),
		realtimeHandler:  NewRealtimeHandler(hub, config.GetAllowedOrigins()),
		healthHandler:    NewHealthHandler(db),
		userUsecase:      userUsecase,
		config:           config,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.GetAllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAnyOrigin(r.config.GetAllowedOrigins()),
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", r.healthHandler.Health)
	router.GET("/ws", r.realtimeHandler.Connect)

	api := router.Group("/api")
	api.Use(middleware.RateLimiter(middleware.NewLimiter(r.config.GetRateLimitPerSecond())))
	authenticated := middleware.AuthMiddleWare(r.userUsecase)

	// Public routes (no authentication required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
	}

	users := api.Group("/users")
	{
		users.GET("/me", authenticated, r.userHandler.GetCurrentUser)
		users.PUT("/me", authenticated, r.userHandler.UpdateUser)
		users.DELETE("/me", authenticated, r.userHandler.DeleteCurrentUser)
		users.GET("/search", authenticated, r.messagingHandler.SearchUsers)
		users.GET("/:id", r.userHandler.GetUser)
		users.POST("/:id/follow", authenticated, r.userHandler.Follow)
		users.DELETE("/:id/follow", authenticated, r.userHandler.Unfollow)
	}

	messages := api.Group("/messages", authenticated)
	{
		messages.GET("/conversations", r.messagingHandler.GetConversations)
		messages.POST("/conversations", r.messagingHandler.CreateConversation)
		messages.GET("/conversations/:conversationId/messages", r.messagingHandler.GetMessages)
		messages.POST("/conversations/:conversationId/messages", r.messagingHandler.SendMessage)
		messages.PUT("/conversations/:conversationId/read", r.messagingHandler.MarkAsRead)
		messages.DELETE("/conversations/:conversationId", r.messagingHandler.DeleteConversation)
		messages.DELETE("/messages/:messageId", r.messagingHandler.DeleteMessage)
		messages.GET("/users/search", r.messagingHandler.SearchUsers)
		messages.GET("/unread", r.messagingHandler.GetUnreadCount)
	}

	api.GET("/presence/:userId", r.presenceHandler.GetPresence)

	reviews := api.Group("/reviews")
	{
		reviews.GET("/nearby", r.reviewHandler.GetNearbyReviews)
		reviews.GET("", r.reviewHandler.ListByUsername)
		reviews.GET("/:id", r.reviewHandler.GetReview)
		reviews.POST("", authenticated, r.reviewHandler.CreateReview)
		reviews.DELETE("/:id", authenticated, r.reviewHandler.DeleteReview)
	}

	ads := api.Group("/ads")
	{
		ads.GET("", r.adHandler.ListAds)
		ads.GET("/:id", r.adHandler.GetAd)
		ads.POST("", authenticated, r.adHandler.CreateAd)
		ads.PUT("/:id", authenticated, r.adHandler.UpdateAd)
		ads.DELETE("/:id", authenticated, r.adHandler.DeleteAd)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", r.postHandler.ListPosts)
		posts.GET("/:id", r.postHandler.GetPost)
		posts.POST("", authenticated, r.postHandler.CreatePost)
		posts.POST("/:id/reactions", authenticated, r.postHandler.ToggleReaction)
		posts.POST("/:id/comments", authenticated, r.postHandler.AddComment)
		posts.POST("/:id/comments/:commentId/replies", authenticated, r.postHandler.AddReply)
		posts.DELETE("/:id", authenticated, r.postHandler.DeletePost)
	}
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
