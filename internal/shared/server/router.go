package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnhub-backend/internal/ats"
	"learnhub-backend/internal/bookmarks"
	"learnhub-backend/internal/documents"
	"learnhub-backend/internal/generate"
	"learnhub-backend/internal/learningpaths"
	"learnhub-backend/internal/llm"
	"learnhub-backend/internal/llm/gemini"
	"learnhub-backend/internal/llm/openai"
	"learnhub-backend/internal/quizzes"
	"learnhub-backend/internal/services/health"
	"learnhub-backend/internal/shared/config"
	"learnhub-backend/internal/shared/server/middleware"
	"learnhub-backend/internal/shared/server/respond"
	"learnhub-backend/internal/shared/storage/db"
	"learnhub-backend/internal/shared/storage/scratch"
	"learnhub-backend/internal/tasks"
	"learnhub-backend/internal/vision"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	registry := newLLMRegistry(cfg)
	store := scratch.New(cfg.ScratchDir)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	exposeDetails := !cfg.IsProduction()

	var taskRepo tasks.Repo
	if sqlDB != nil {
		taskRepo = &tasks.PGRepo{DB: sqlDB}
	} else {
		taskRepo = tasks.NewMemoryRepo()
	}
	taskHandler := tasks.NewHandler(taskRepo)

	var bookmarkRepo bookmarks.Repo
	if sqlDB != nil {
		bookmarkRepo = &bookmarks.PGRepo{DB: sqlDB}
	} else {
		bookmarkRepo = bookmarks.NewMemoryRepo()
	}
	bookmarkHandler := bookmarks.NewHandler(bookmarkRepo)

	var resultsRepo quizzes.ResultsRepo
	if sqlDB != nil {
		resultsRepo = &quizzes.PGResultsRepo{DB: sqlDB}
	} else {
		resultsRepo = quizzes.NewMemoryResultsRepo()
	}
	quizSvc := &quizzes.Service{Registry: registry}
	quizHandler := quizzes.NewHandler(quizSvc, resultsRepo, exposeDetails)

	var pathRepo learningpaths.Repo
	if sqlDB != nil {
		pathRepo = &learningpaths.PGRepo{DB: sqlDB}
	} else {
		pathRepo = learningpaths.NewMemoryRepo()
	}
	pathSvc := &learningpaths.Service{Registry: registry, Repo: pathRepo}
	pathHandler := learningpaths.NewHandler(pathSvc, exposeDetails)

	atsHandler := ats.NewHandler()
	generateHandler := generate.NewHandler(registry, exposeDetails)
	documentHandler := documents.NewHandler(registry, store, exposeDetails)
	visionHandler := vision.NewHandler(registry, exposeDetails)
	healthSvc := health.NewService(cfg.Env, cfg.GeminiAPIKey, cfg.OpenAIAPIKey)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})

	// Everything below is keyed to a caller identity.
	api.Use(middleware.Identity())
	atsHandler.RegisterRoutes(api)
	taskHandler.RegisterRoutes(api)
	bookmarkHandler.RegisterRoutes(api)

	// Provider-backed routes get a tighter rate limit than plain CRUD.
	generation := api.Group("")
	generation.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"GENERATION": {Rate: 0.5, Burst: 5},
		},
		DefaultGroup: "GENERATION",
	}))
	generateHandler.RegisterRoutes(generation)
	documentHandler.RegisterRoutes(generation)
	visionHandler.RegisterRoutes(generation)
	quizHandler.RegisterRoutes(generation)
	pathHandler.RegisterRoutes(generation)

	return r
}

// newLLMRegistry wires the configured providers. A missing API key is
// recorded instead of failing startup so the other provider stays usable.
func newLLMRegistry(cfg config.Config) *llm.Registry {
	registry := llm.NewRegistry("gemini")

	if cfg.GeminiAPIKey == "" {
		registry.RegisterMissing("gemini", "GEMINI_API_KEY")
	} else {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			log.Printf("gemini client unavailable: %v", err)
			registry.RegisterMissing("gemini", "GEMINI_API_KEY")
		} else {
			registry.Register("gemini", client)
		}
	}

	if cfg.OpenAIAPIKey == "" {
		registry.RegisterMissing("openai", "OPENAI_API_KEY")
	} else {
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout)
		if err != nil {
			log.Printf("openai client unavailable: %v", err)
			registry.RegisterMissing("openai", "OPENAI_API_KEY")
		} else {
			registry.Register("openai", client)
		}
	}

	return registry
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
