package service

import (
	"context"
	"fmt"

	"mediquick-api/internal/domain/repository"
	"mediquick-api/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedResult reports what seeding did for one collection.
type SeedResult struct {
	Collection string `json:"collection"`
	Inserted   int    `json:"inserted"`
	Skipped    bool   `json:"skipped"`
}

// SeedService inserts demo records into empty collections. Collections that
// already hold any record are left untouched, so seeding can be rerun.
type SeedService struct {
	db           *gorm.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	doctorRepo   repository.DoctorRepository
	labTestRepo  repository.LabTestRepository
	medicineRepo repository.MedicineRepository
}

func NewSeedService(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	doctorRepo repository.DoctorRepository,
	labTestRepo repository.LabTestRepository,
	medicineRepo repository.MedicineRepository,
) *SeedService {
	return &SeedService{
		db:           db,
		log:          log,
		validator:    validator,
		doctorRepo:   doctorRepo,
		labTestRepo:  labTestRepo,
		medicineRepo: medicineRepo,
	}
}

// SeedAll seeds doctors, lab tests and medicines in that order and stops at
// the first failure.
func (s *SeedService) SeedAll(ctx context.Context) ([]SeedResult, error) {
	steps := []func(context.Context) (SeedResult, error){
		s.SeedDoctors,
		s.SeedLabTests,
		s.SeedMedicines,
	}

	results := make([]SeedResult, 0, len(steps))
	for _, step := range steps {
		result, err := step(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *SeedService) SeedDoctors(ctx context.Context) (SeedResult, error) {
	return seedCollection(ctx, s, "doctors", s.doctorRepo.Count, DoctorFixtures(), s.doctorRepo.CreateBatch)
}

func (s *SeedService) SeedLabTests(ctx context.Context) (SeedResult, error) {
	return seedCollection(ctx, s, "lab_tests", s.labTestRepo.Count, LabTestFixtures(), s.labTestRepo.CreateBatch)
}

func (s *SeedService) SeedMedicines(ctx context.Context) (SeedResult, error) {
	return seedCollection(ctx, s, "medicines", s.medicineRepo.Count, MedicineFixtures(), s.medicineRepo.CreateBatch)
}

type defaulter interface {
	ApplyDefaults()
}

func seedCollection[T any](
	ctx context.Context,
	s *SeedService,
	name string,
	count func(*gorm.DB) (int64, error),
	fixtures []T,
	insert func(*gorm.DB, []T) error,
) (SeedResult, error) {
	result := SeedResult{Collection: name}
	db := s.db.WithContext(ctx)

	existing, err := count(db)
	if err != nil {
		return result, fmt.Errorf("count %s: %w", name, err)
	}
	if existing > 0 {
		s.log.Infof("Skipping %s seed: collection already has %d records", name, existing)
		result.Skipped = true
		return result, nil
	}

	for i := range fixtures {
		item := &fixtures[i]
		if d, ok := any(item).(defaulter); ok {
			d.ApplyDefaults()
		}
		if err := s.validator.ValidateEntity(item); err != nil {
			return result, fmt.Errorf("invalid %s fixture #%d: %w", name, i, err)
		}
	}

	if err := insert(db, fixtures); err != nil {
		return result, fmt.Errorf("insert %s: %w", name, err)
	}

	result.Inserted = len(fixtures)
	s.log.Infof("Seeded %d %s", result.Inserted, name)
	return result, nil
}
