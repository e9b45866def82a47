package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mockview/practice-api/config"
	"github.com/mockview/practice-api/database"
	adminctrl "github.com/mockview/practice-api/internal/controller/admin"
	practicectrl "github.com/mockview/practice-api/internal/controller/practice"
	"github.com/mockview/practice-api/internal/logger"
	"github.com/mockview/practice-api/internal/model"
	"github.com/mockview/practice-api/internal/repository"
	"github.com/mockview/practice-api/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Mock Interview Practice API
// @version 1.0
// @description Practice sessions (single question or full mock interview) with AI-scored answers and structured feedback.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewSessionRepository,
			repository.NewAnswerRepository,
			repository.NewQuestionRepository,
			repository.NewCategoryRepository,
		),

		// Services layer
		fx.Provide(
			service.NewQuestionSelectorService,
			service.NewSessionAggregatorService,
			service.NewGeminiScoringService,
			service.NewQuestionBankService,
			func(sessionRepo repository.SessionRepository, selector service.QuestionSelectorService, db *gorm.DB) service.SessionService {
				return service.NewSessionService(sessionRepo, selector, db)
			},
			func(
				sessionRepo repository.SessionRepository,
				answerRepo repository.AnswerRepository,
				scoring service.ScoringService,
				aggregator service.SessionAggregatorService,
				db *gorm.DB,
			) service.SubmissionService {
				return service.NewSubmissionService(sessionRepo, answerRepo, scoring, aggregator, db)
			},
		),

		// API controllers layer
		fx.Provide(
			practicectrl.NewPracticeController,
			adminctrl.NewAdminQuestionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	practiceCtrl *practicectrl.PracticeController,
	adminQuestionCtrl *adminctrl.AdminQuestionController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		questionsGroup := adminAPIGroup.Group("/questions")
		questionsGroup.POST("", adminQuestionCtrl.CreateQuestion)
		questionsGroup.GET("", adminQuestionCtrl.ListQuestions)
	}

	practiceAPIGroup := router.Group("/api/v1/practice")
	{
		practiceAPIGroup.POST("/start-single", practiceCtrl.StartSingleSession)
		practiceAPIGroup.POST("/start-full", practiceCtrl.StartFullSession)

		sessionsGroup := practiceAPIGroup.Group("/sessions")
		sessionsGroup.GET("/:session_id", practiceCtrl.GetSession)
		sessionsGroup.POST("/:session_id/submit-single", practiceCtrl.SubmitSingle)
		sessionsGroup.POST("/:session_id/submit-answer", practiceCtrl.SubmitAnswer)
		sessionsGroup.POST("/:session_id/complete", practiceCtrl.CompleteSession)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Practice API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Category{},
		&model.Question{},
		&model.Session{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
