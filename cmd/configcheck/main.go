package main

import (
	"os"

	"mediquick-api/cmd/bootstrap"
	"mediquick-api/config"
	"mediquick-api/internal/configcheck"
	"mediquick-api/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	checker := configcheck.NewChecker(bootstrap.NewLogger(cfg.App), configcheck.WithMigrations(database.MigrationFiles))
	report := checker.Check(cfg)

	if err := report.Write(os.Stdout); err != nil {
		logrus.Errorf("Failed to write report: %v", err)
		os.Exit(1)
	}
	if report.HasErrors() {
		os.Exit(1)
	}
}
