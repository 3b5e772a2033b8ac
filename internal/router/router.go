// Package router assembles the HTTP surface: repositories, services and
// handlers are wired here over a single database handle.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rayysidd/mun/internal/auth"
	"github.com/rayysidd/mun/internal/config"
	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/handlers"
	"github.com/rayysidd/mun/internal/middleware"
	"github.com/rayysidd/mun/internal/repository"
	"github.com/rayysidd/mun/internal/services"
	"github.com/rayysidd/mun/internal/utils"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New builds the gin engine wrapped in CORS handling.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger, aiService *services.AIService) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	hasher := utils.BcryptHasher{Cost: cfg.BcryptCost}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	delegationRepo := repository.NewDelegationRepository(db)
	sourceRepo := repository.NewSourceRepository(db)
	speechRepo := repository.NewSpeechRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, hasher, tokens)
	eventService := services.NewEventService(eventRepo, delegationRepo, sourceRepo, hasher, services.EventOptions{
		AllowDuplicateCountry: cfg.AllowDuplicateCountry,
	})
	speechService := services.NewSpeechService(speechRepo, delegationRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	eventHandler := handlers.NewEventHandler(eventService, log)
	speechHandler := handlers.NewSpeechHandler(speechService, log)
	chatHandler := handlers.NewChatHandler(aiService, log)

	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.Recovery(log))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			log.Warn("health check failed", zap.Error(err))
			apierrors.RespondWithError(c, http.StatusServiceUnavailable,
				apierrors.NewAPIError(apierrors.ErrCodeServiceUnavailable, "database unavailable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "DiploMate API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokens)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.GET("/profile", requireAuth, authHandler.Profile)
			users.POST("/save", requireAuth, speechHandler.SaveSpeech)
			users.GET("/speeches", requireAuth, speechHandler.ListSpeeches)
			users.GET("/speeches/:id", requireAuth, speechHandler.GetSpeech)
			users.DELETE("/speeches/:id", requireAuth, speechHandler.DeleteSpeech)
		}

		events := api.Group("/events")
		events.Use(requireAuth)
		{
			events.POST("", eventHandler.CreateEvent)
			events.GET("", eventHandler.ListEvents)
			events.POST("/join", eventHandler.JoinEvent)
			events.GET("/:eventId", eventHandler.GetEvent)
			events.GET("/:eventId/delegates", eventHandler.GetDelegates)
			events.DELETE("/:eventId/leave", eventHandler.LeaveEvent)
			events.POST("/:eventId/sources", eventHandler.AddSource)
			events.GET("/:eventId/sources", eventHandler.GetSources)
		}

		chat := api.Group("/chat")
		if cfg.ChatRequireAuth {
			chat.Use(requireAuth)
		}
		{
			chat.POST("", chatHandler.Chat)
			chat.POST("/speech", chatHandler.Speech)
			chat.POST("/resolution", chatHandler.Resolution)
		}
	}

	return cors.New(corsOptions(cfg)).Handler(r)
}

func corsOptions(cfg *config.Config) cors.Options {
	return cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}
}
