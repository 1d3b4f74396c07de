package repository

import (
	"mediquick-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	CreateBatch(db *gorm.DB, doctors []entity.Doctor) error
	Count(db *gorm.DB) (int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB, filter entity.DoctorFilter, limit, offset int) ([]entity.Doctor, int64, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
	IncrementConsultations(db *gorm.DB, id uuid.UUID) error
	ApplyRating(db *gorm.DB, id uuid.UUID, rating int) (int64, error)
}
