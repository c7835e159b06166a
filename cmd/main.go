package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/config"
	"github.com/ukydev/motor-quotation/internal/handlers"
	"github.com/ukydev/motor-quotation/internal/lead"
	"github.com/ukydev/motor-quotation/internal/logging"
	"github.com/ukydev/motor-quotation/internal/middleware"
	"github.com/ukydev/motor-quotation/internal/models"
	"github.com/ukydev/motor-quotation/internal/notify"
	"github.com/ukydev/motor-quotation/internal/quotation"
	"github.com/ukydev/motor-quotation/internal/reference"
	"github.com/ukydev/motor-quotation/internal/session"
	"github.com/ukydev/motor-quotation/internal/wizard"
)

type app struct {
	router http.Handler
	onStop []func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	a, err := newApp(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to start")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("Server shutdown error")
		}
	}()

	logger.WithFields(log.Fields{
		"port":              cfg.Server.Port,
		"email_provider":    cfg.Notify.EmailProvider,
		"whatsapp_provider": cfg.Notify.WhatsAppProvider,
	}).Info("HTTP server listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("Server error")
	}

	for _, stop := range a.onStop {
		if err := stop(); err != nil {
			logger.WithError(err).Warn("Failed to close notification backend")
		}
	}
	logger.Info("Server stopped")
}

// newApp wires the service from its configuration.
func newApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app, error) {
	secret := cfg.Session.Secret
	if secret == "" {
		secret = randomSecret()
		logging.Component(logger, "session").Warn("SESSION_SECRET not set, using a random secret; sessions will not survive a restart")
	}
	sessions, err := session.NewService(secret, cfg.Session.Expiry)
	if err != nil {
		return nil, err
	}

	backends, err := newBackends(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	dispatcher := notify.NewDispatcher(backends.email, backends.whatsapp,
		notify.Recipients{TeamEmail: cfg.Notify.TeamEmail, TeamWhatsApp: cfg.Notify.TeamWhatsApp},
		notify.WithTimeout(cfg.Notify.Timeout),
		notify.WithLogger(logging.Component(logger, "notify")),
	)
	engine := quotation.NewEngine(quotation.WithLogger(logging.Component(logger, "quotation")))
	deps := wizard.Deps{
		Pricer:     engine,
		References: reference.NewGenerator(),
		Leads:      lead.NewBuilder(nil, logging.Component(logger, "lead")),
		Notifier:   dispatcher,
		Log:        logging.Component(logger, "wizard"),
	}

	a := &app{
		router: newRouter(cfg, logger, routes{
			sessions:      sessions,
			wizard:        handlers.NewWizardHandler(sessions, deps, logging.Component(logger, "wizard")),
			quotations:    handlers.NewQuotationHandler(engine),
			notifications: handlers.NewNotificationHandler(dispatcher, logging.Component(logger, "notifications")),
			catalog:       handlers.NewCatalogHandler(models.Catalog),
			health:        handlers.NewHealthHandler(backends.outbox),
		}),
		onStop: backends.closers,
	}
	return a, nil
}

type routes struct {
	sessions      *session.Service
	wizard        *handlers.WizardHandler
	quotations    *handlers.QuotationHandler
	notifications *handlers.NotificationHandler
	catalog       *handlers.CatalogHandler
	health        *handlers.HealthHandler
}

func newRouter(cfg *config.Config, logger *log.Logger, h routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logging.Component(logger, "http")))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	r.Use(cors)

	limiter := middleware.NewRateLimitMiddleware()
	submitLimit := limiter.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	sessionMW := middleware.NewSessionMiddleware(h.sessions)

	r.Get("/health", h.health.Health)
	r.With(submitLimit).Post("/notifications", h.notifications.Send)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.catalog.Catalog)
		r.Get("/coverages", h.catalog.Coverages)
		r.Post("/quotations", h.quotations.Calculate)

		r.Post("/wizard", h.wizard.Start)
		r.Group(func(r chi.Router) {
			r.Use(sessionMW.RequireSession)
			r.Get("/wizard", h.wizard.Get)
			r.Patch("/wizard/form", h.wizard.UpdateForm)
			r.Post("/wizard/next", h.wizard.Next)
			r.Post("/wizard/back", h.wizard.Back)
			r.With(submitLimit).Post("/wizard/submit", h.wizard.Submit)
		})
	})

	return r
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.SessionHeader)
		w.Header().Set("Access-Control-Expose-Headers", middleware.SessionHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
