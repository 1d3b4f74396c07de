package repository

import (
	"errors"

	"mediquick-api/internal/domain/entity"
	domainRepo "mediquick-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicineRepository struct{}

func NewMedicineRepository() domainRepo.MedicineRepository {
	return &medicineRepository{}
}

func (r *medicineRepository) Create(db *gorm.DB, medicine *entity.Medicine) error {
	return db.Create(medicine).Error
}

func (r *medicineRepository) CreateBatch(db *gorm.DB, medicines []entity.Medicine) error {
	return db.CreateInBatches(medicines, batchSize).Error
}

func (r *medicineRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Medicine{}).Count(&total).Error
	return total, err
}

func (r *medicineRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error) {
	var medicine entity.Medicine
	err := db.Where("id = ?", id).First(&medicine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

func (r *medicineRepository) FindAll(db *gorm.DB, filter entity.MedicineFilter, limit, offset int) ([]entity.Medicine, int64, error) {
	query := db.Model(&entity.Medicine{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Name != "" {
		pattern := "%" + escapeLike(filter.Name) + "%"
		query = query.Where("name ILIKE ? OR generic_name ILIKE ?", pattern, pattern)
	}
	if filter.RequiresPrescription != nil {
		query = query.Where("requires_prescription = ?", *filter.RequiresPrescription)
	}

	var medicines []entity.Medicine
	total, err := paginate(query, "name ASC", limit, offset, &medicines)
	if err != nil {
		return nil, 0, err
	}
	return medicines, total, nil
}

func (r *medicineRepository) Update(db *gorm.DB, medicine *entity.Medicine) error {
	return db.Omit("created_at").Save(medicine).Error
}

func (r *medicineRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Medicine{}).Where("id = ?", id).Update("is_active", false)
	return result.RowsAffected, result.Error
}
