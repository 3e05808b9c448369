// Package web is the JSON API service of the application.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler"
	userhandler "github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/admin/user"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/assignment"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/audit"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/campaignflow"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/distribution"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/login"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/logout"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/notification"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/permission"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/report"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/handler/shipping"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "EVCare-Admin",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// bearer token middleware
	app.Use(auth.BearerMiddleware(cfg.Webserver.JWTSecret))

	// Initialize auth service
	authService := auth.NewService(db)

	// init web service
	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
	}
	service.alive.Store(true)

	// liveness probe for load balancers
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return handler.Fail(c, fiber.StatusServiceUnavailable, "shutting down")
		}

		return handler.OKMessage(c, "alive")
	})

	// init handlers (they register their own routes with permission checks)
	initHandlers(app, cfg, db, authService)

	return service
}

// initHandlers registers every handler's routes.
func initHandlers(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	handlers := map[string]handler.Service{
		"login":        &login.Handler,
		"logout":       &logout.Handler,
		"permission":   &permission.Handler,
		"audit":        &audit.Handler,
		"distribution": &distribution.Handler,
		"assignment":   &assignment.Handler,
		"notification": &notification.Handler,
		"report":       &report.Handler,
		"campaignflow": &campaignflow.Handler,
		"shipping":     &shipping.Handler,
		"user":         &userhandler.Handler,
	}

	for name, h := range handlers {
		if err := h.Init(app, cfg, db, authService); err != nil {
			log.Fatal().Err(err).Str("handler", name).Msg("failed to init handler")
		}
	}
}
