package repository

import (
	"errors"
	"time"

	"mediquick-api/internal/domain/entity"
	domainRepo "mediquick-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) Create(db *gorm.DB, consultation *entity.Consultation) error {
	return db.Omit("Doctor").Create(consultation).Error
}

func (r *consultationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.Preload("Doctor").Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindAll(db *gorm.DB, filter entity.ConsultationFilter, limit, offset int) ([]entity.Consultation, int64, error) {
	query := db.Model(&entity.Consultation{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var consultations []entity.Consultation
	total, err := paginate(query.Preload("Doctor"), "appointment_date DESC, appointment_time DESC", limit, offset, &consultations)
	if err != nil {
		return nil, 0, err
	}
	return consultations, total, nil
}

func (r *consultationRepository) TransitionStatus(db *gorm.DB, id uuid.UUID, from, to entity.ConsultationStatus, fields map[string]interface{}) (int64, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range fields {
		updates[k] = v
	}

	result := db.Model(&entity.Consultation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) UpdatePrescription(db *gorm.DB, id uuid.UUID, prescription *entity.Prescription) (int64, error) {
	result := db.Model(&entity.Consultation{}).
		Where("id = ?", id).
		Select("prescription", "updated_at").
		Updates(&entity.Consultation{Prescription: prescription})
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) UpdatePayment(db *gorm.DB, id uuid.UUID, from, to entity.PaymentStatus) (int64, error) {
	result := db.Model(&entity.Consultation{}).
		Where("id = ? AND payment_status = ?", id, from).
		Update("payment_status", to)
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) SetRating(db *gorm.DB, id uuid.UUID, rating int, feedback string) (int64, error) {
	result := db.Model(&entity.Consultation{}).
		Where("id = ? AND status = ? AND rating IS NULL", id, entity.ConsultationCompleted).
		Updates(map[string]interface{}{"rating": rating, "feedback": feedback})
	return result.RowsAffected, result.Error
}

// FindOverdueScheduled returns scheduled consultations whose appointment
// started before the given instant.
func (r *consultationRepository) FindOverdueScheduled(db *gorm.DB, before time.Time, limit int) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Where("status = ?", entity.ConsultationScheduled).
		Where("(appointment_date + appointment_time::time) < ?", before.UTC().Format("2006-01-02 15:04:05")).
		Order("appointment_date ASC, appointment_time ASC").
		Limit(limit).
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}
