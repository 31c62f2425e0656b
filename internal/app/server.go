// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"lenddesk-service/internal/config"
	"lenddesk-service/internal/db"
	"lenddesk-service/internal/erp"
	authHandler "lenddesk-service/internal/handlers/auth"
	lendingHandler "lenddesk-service/internal/handlers/lending"
	wsHandler "lenddesk-service/internal/handlers/ws"
	"lenddesk-service/internal/middleware"
	"lenddesk-service/internal/notify"
	"lenddesk-service/internal/repository/redisrepo"
	authUsecase "lenddesk-service/internal/service/auth"
	lendingUsecase "lenddesk-service/internal/service/lending"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg        config.AppConfig
	engine     *gin.Engine
	logger     *zap.Logger
	controller *authUsecase.Controller
	hubCancel  context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] ✅ Connected successfully")

	// ----- ERP Client -----
	erpClient, err := erp.NewClient(erp.Config{
		BaseURL:   s.cfg.ERPBaseURL,
		CSRFToken: s.cfg.ERPCSRFToken,
		Timeout:   s.cfg.RequestTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to build ERP client: %w", err)
	}

	// ----- Repositories -----
	snapshotRepo := redisrepo.NewSnapshotRepository(redisClient, s.cfg.SnapshotKeyPrefix, logger)

	// ----- Notification Hub -----
	hub := notify.NewHub(logger)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	s.hubCancel = hubCancel
	go hub.Run(hubCtx)

	// ----- Services (Usecases) -----
	gateway := authUsecase.NewGateway(erpClient, snapshotRepo, logger)
	controller := authUsecase.NewController(gateway, hub, logger)
	s.controller = controller

	lendingService := lendingUsecase.NewLendingService(erpClient, logger)

	// The session check runs before the first request is served. A backend
	// outage here leaves the process signed out, not crashed.
	controller.Initialize(context.Background())

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(controller)
	lendingHandlerInst := lendingHandler.NewLendingHandler(lendingService)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, controller, logger)

	// ----- Middlewares -----
	guard := middleware.NewGuard(controller, s.cfg.LoginPath)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:    authHandlerInst,
		LendingHandler: lendingHandlerInst,
		WSHandler:      wsHandlerInst,
		Guard:          guard,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown stops the notification hub. The remote session and its cached
// snapshot are left intact so the next start can resume it.
func (s *Server) Shutdown(ctx context.Context) {
	if s.hubCancel != nil {
		s.hubCancel()
	}
}
