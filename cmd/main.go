package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "portfolio_cms/docs"
	"portfolio_cms/internal/config"
	"portfolio_cms/internal/handlers"
	"portfolio_cms/internal/logger"
	"portfolio_cms/internal/repository"
	"portfolio_cms/internal/repository/db"
	"portfolio_cms/internal/server"
	"portfolio_cms/internal/service"
)

// @title                       Portfolio CMS API
// @version                     1.0
// @description                 Content API behind a personal portfolio site.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	// load config.yml
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, driver, err := openDB(cfg.DB)
	if err != nil {
		log.Fatalw("failed to init database", "err", err, "driver", cfg.DB.Driver)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn, driver)
	services := service.NewService(repos, service.AuthConfig{
		SigningKey: cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, log)

	ensureAdmin(services, cfg.Admin, log)

	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		CORSOrigin: cfg.CORS.Origin,
		StaticDir:  cfg.Server.StaticDir,
	})

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, cfg.Server, log)
}

// openDB initializes the configured database.
func openDB(c config.DBConfig) (*sql.DB, string, error) {
	return db.InitDB(db.Options{
		Driver: c.Driver,
		Path:   c.Path,
		DSN:    c.DSN,
	})
}

// ensureAdmin makes sure the configured admin account can log in.
func ensureAdmin(services *service.Service, admin config.AdminConfig, log *logger.Logger) {
	if admin.Username == "" {
		return
	}
	if admin.Password == "" {
		log.Warnw("admin.username set without admin.password; skipping admin bootstrap", "username", admin.Username)
		return
	}
	created, err := services.EnsureAdmin(context.Background(), admin.Username, admin.Password)
	if err != nil {
		log.Fatalw("failed to ensure admin account", "err", err, "username", admin.Username)
	}
	if created {
		log.Infow("admin account created", "username", admin.Username)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg config.Config, handler *handlers.Handler, log *logger.Logger) {
	opts := server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	go func() {
		log.Infow("server listening", "port", cfg.Port)
		if err := srv.Run(cfg.Port, handler.InitRoutes(), opts); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg config.ServerConfig, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
