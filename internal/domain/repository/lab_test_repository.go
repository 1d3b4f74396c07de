package repository

import (
	"mediquick-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabTestRepository interface {
	Create(db *gorm.DB, test *entity.LabTest) error
	CreateBatch(db *gorm.DB, tests []entity.LabTest) error
	Count(db *gorm.DB) (int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabTest, error)
	FindByCode(db *gorm.DB, code string) (*entity.LabTest, error)
	FindAll(db *gorm.DB, filter entity.LabTestFilter, limit, offset int) ([]entity.LabTest, int64, error)
	Update(db *gorm.DB, test *entity.LabTest) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
	Query(db *gorm.DB, q entity.LabTestQuery) ([]entity.LabTest, error)
	IncrementOrderCount(db *gorm.DB, id uuid.UUID) (int64, error)
	ApplyRating(db *gorm.DB, id uuid.UUID, rating int) (int64, error)
	AddViewCounts(db *gorm.DB, counts map[uuid.UUID]int64) error
}
