package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shreejanpandit/doc-appointment-api/authentication"
	"github.com/shreejanpandit/doc-appointment-api/configuration"
	"github.com/shreejanpandit/doc-appointment-api/controllers"
	"github.com/shreejanpandit/doc-appointment-api/logger"
	"github.com/shreejanpandit/doc-appointment-api/monitoring"
	"github.com/shreejanpandit/doc-appointment-api/policies"
	"github.com/shreejanpandit/doc-appointment-api/repository"
	"github.com/shreejanpandit/doc-appointment-api/requests"
	"github.com/shreejanpandit/doc-appointment-api/routes"
)

func main() {
	cfg, err := configuration.Load()
	if err != nil {
		logger.New("info").WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Log.Level)
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

func run(cfg *configuration.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Perform application initialization
	db, err := configuration.ConfigDB(cfg.Database)
	if err != nil {
		return err
	}
	client, err := configuration.InitRedis(ctx, cfg.Redis, log.WithComponent("redis"))
	if err != nil {
		return err
	}
	defer client.Close()

	store := repository.New(db)
	if err := seedAdmin(ctx, store, cfg.Admin, log); err != nil {
		return err
	}

	requests.Register()
	metrics := monitoring.NewMetrics("doc_appointment")
	handler := &controllers.Handler{
		Store:    store,
		Policies: policies.New(log).WithRecorder(metrics),
		Tokens:   authentication.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer),
		Sessions: authentication.NewSessionStore(client),
		Images:   controllers.NewImageStore(cfg.Upload.Dir),
		Metrics:  metrics,
		Log:      log,
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           routes.Router(handler, cfg.Server.AllowedOrigins, log),
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedAdmin makes sure the configured admin account exists.
func seedAdmin(ctx context.Context, store *repository.Store, admin configuration.AdminConfig, log *logger.Logger) error {
	if admin.Email == "" {
		return nil
	}

	hashed, err := authentication.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	created, err := store.EnsureAdmin(ctx, admin.Name, admin.Email, hashed)
	if err != nil {
		return err
	}
	if created {
		log.WithField("email", admin.Email).Info("Admin account created")
	}
	return nil
}
