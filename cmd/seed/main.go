package main

import (
	"context"
	"os"
	"time"

	"mediquick-api/cmd/bootstrap"
	"mediquick-api/config"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/repository"
	"mediquick-api/internal/service"
	"mediquick-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

const seedTimeout = 2 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := bootstrap.NewLogger(cfg.App)

	db, err := bootstrap.ConnectDatabase(cfg, log)
	if err != nil {
		log.Errorf("Seeding aborted: %v", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	seeder := service.NewSeedService(
		db,
		log,
		validator.NewValidator(validator.WithEnums(entity.ValidationEnums())),
		repository.NewDoctorRepository(),
		repository.NewLabTestRepository(),
		repository.NewMedicineRepository(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	results, err := seeder.SeedAll(ctx)
	for _, r := range results {
		log.WithFields(logrus.Fields{
			"collection": r.Collection,
			"inserted":   r.Inserted,
			"skipped":    r.Skipped,
		}).Info("Seed step finished")
	}
	if err != nil {
		log.Errorf("Seeding failed: %v", err)
		cancel()
		os.Exit(1)
	}

	log.Info("Seeding complete")
}
