package repository

import (
	"errors"

	"mediquick-api/internal/domain/entity"
	domainRepo "mediquick-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) CreateBatch(db *gorm.DB, doctors []entity.Doctor) error {
	return db.CreateInBatches(doctors, batchSize).Error
}

func (r *doctorRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Doctor{}).Count(&total).Error
	return total, err
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB, filter entity.DoctorFilter, limit, offset int) ([]entity.Doctor, int64, error) {
	query := db.Model(&entity.Doctor{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Specialization != "" {
		query = query.Where("specialization = ?", filter.Specialization)
	}

	var doctors []entity.Doctor
	total, err := paginate(query, "rating DESC, total_consultations DESC, name ASC", limit, offset, &doctors)
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// Update saves profile fields. Rating and consultation counters are only
// changed through their increment methods.
func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("rating", "rating_count", "total_consultations", "created_at").Save(doctor).Error
}

func (r *doctorRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Doctor{}).Where("id = ?", id).Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *doctorRepository) IncrementConsultations(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Doctor{}).Where("id = ?", id).
		UpdateColumn("total_consultations", gorm.Expr("total_consultations + 1")).Error
}

func (r *doctorRepository) ApplyRating(db *gorm.DB, id uuid.UUID, rating int) (int64, error) {
	result := db.Model(&entity.Doctor{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
		"rating":       gorm.Expr("(rating * rating_count + ?) / (rating_count + 1)", rating),
		"rating_count": gorm.Expr("rating_count + 1"),
	})
	return result.RowsAffected, result.Error
}
