package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "taskassistant/docs"
	"taskassistant/internal/config"
	"taskassistant/internal/handlers"
	"taskassistant/internal/llm"
	"taskassistant/internal/middleware"
	"taskassistant/internal/pdf"
	"taskassistant/internal/realtime"
	"taskassistant/internal/repositories"
	"taskassistant/internal/routes"
	"taskassistant/internal/services"
)

const shutdownTimeout = 15 * time.Second

// App owns the HTTP server and everything it needs to shut down cleanly.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *sql.DB
	chat   services.ChatService
	Router *gin.Engine
}

type stores struct {
	tasks repositories.TaskRepository
	users repositories.UserRepository
	chats repositories.ChatRepository
}

// New wires repositories, services and handlers from cfg.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	st, err := a.openStores(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, llm.ProviderConfig{
		Name:    cfg.LLM.Provider,
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	}, &http.Client{})
	if err != nil {
		a.Close()
		return nil, err
	}
	client := llm.NewClient(provider, llm.ClientOptions{
		APIKey: cfg.LLM.APIKey,
		Defaults: llm.Sampling{
			Model:       cfg.LLM.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
			TopK:        cfg.LLM.TopK,
		},
		Timeout: cfg.LLM.Timeout,
	}, log)
	if !client.Available() {
		log.Warn("[app][llm] no API key configured, assistant features will use fallbacks",
			zap.String("provider", cfg.LLM.Provider))
	}

	hub := realtime.NewTaskHub(log)

	// === Services ===
	userService := services.NewUserService(st.users, log)
	supportService := services.NewSupportService(client, log)
	taskService := services.NewTaskService(st.tasks, st.users, supportService, log)
	decomposer := services.NewDecompositionService(client, st.tasks, st.users, log)
	a.chat = services.NewChatService(client, st.users, st.chats, taskService, decomposer, hub, services.ChatOptions{
		HistoryLimit:  cfg.Chat.HistoryLimit,
		MaxToolRounds: cfg.Chat.MaxToolRounds,
		Background:    cfg.Chat.DrainMode == "background",
		DrainTimeout:  cfg.Chat.DrainTimeout,
	}, log)
	statsService := services.NewStatisticsService(st.tasks, st.users, client,
		services.NewFeedbackCache(cfg.LLM.FeedbackTTL, nil), log)

	// === Handlers ===
	secret := []byte(cfg.Auth.JWTSecret)
	h := routes.Handlers{
		Users:      handlers.NewUserHandler(userService, secret, cfg.Auth.TokenTTL, log),
		Tasks:      handlers.NewTaskHandler(taskService, decomposer, pdf.NewChecklistGenerator(cfg.Files.FontPath), log),
		Chat:       handlers.NewChatHandler(a.chat, userService, hub, log),
		Statistics: handlers.NewStatisticsHandler(statsService, log),
	}

	// === Gin ===
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())
	router.Use(middleware.OptionalAuth(secret, log))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	routes.SetupRoutes(router, h)

	a.Router = router
	return a, nil
}

func (a *App) openStores(ctx context.Context) (stores, error) {
	if a.cfg.Database.DSN == "" {
		a.log.Warn("[app][db] no database url, using in-memory store")
		mem := repositories.NewMemoryStore()
		return stores{tasks: mem.Tasks(), users: mem.Users(), chats: mem.Chat()}, nil
	}

	db, err := sql.Open("postgres", a.cfg.Database.DSN)
	if err != nil {
		return stores{}, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return stores{}, fmt.Errorf("ping database: %w", err)
	}
	if err := repositories.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return stores{}, err
	}
	a.db = db
	a.log.Info("[app][db] connected to postgres")
	return stores{
		tasks: repositories.NewTaskRepository(db),
		users: repositories.NewUserRepository(db),
		chats: repositories.NewChatRepository(db),
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("[app][http] listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("[app][http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close waits for background chat work and releases the database.
func (a *App) Close() {
	if a.chat != nil {
		a.chat.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("[app][db] close failed", zap.Error(err))
		}
	}
}
