package repository

import (
	"mediquick-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicineRepository interface {
	Create(db *gorm.DB, medicine *entity.Medicine) error
	CreateBatch(db *gorm.DB, medicines []entity.Medicine) error
	Count(db *gorm.DB) (int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error)
	FindAll(db *gorm.DB, filter entity.MedicineFilter, limit, offset int) ([]entity.Medicine, int64, error)
	Update(db *gorm.DB, medicine *entity.Medicine) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
}
