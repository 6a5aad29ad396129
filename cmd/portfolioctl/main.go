// Command portfolioctl runs offline maintenance against the portfolio database.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"portfolio_cms/internal/config"
	"portfolio_cms/internal/logger"
	"portfolio_cms/internal/repository"
	"portfolio_cms/internal/repository/db"
	"portfolio_cms/internal/service"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "portfolioctl",
	Short:         "Maintenance tool for the portfolio CMS database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app is the wired stack shared by subcommands.
type app struct {
	db       *sql.DB
	services *service.Service
	log      *logger.Logger
}

func (a *app) Close() error { return a.db.Close() }

// openApp loads config without requiring a jwt secret; nothing here issues tokens.
func openApp() (*app, error) {
	cfg, err := config.Read(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if verbose {
		level = logger.DebugLevel
	}
	log := logger.New(level, cfg.Log.Format)

	conn, driver, err := db.InitDB(db.Options{Driver: cfg.DB.Driver, Path: cfg.DB.Path, DSN: cfg.DB.DSN})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	services := service.NewService(repository.NewRepository(conn, driver), service.AuthConfig{
		SigningKey: cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, log)
	return &app{db: conn, services: services, log: log}, nil
}
