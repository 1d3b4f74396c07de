package repository

import (
	"time"

	"mediquick-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(db *gorm.DB, consultation *entity.Consultation) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error)
	FindAll(db *gorm.DB, filter entity.ConsultationFilter, limit, offset int) ([]entity.Consultation, int64, error)
	// TransitionStatus moves a consultation from one status to another and
	// sets fields in the same statement. It returns the number of rows
	// changed; zero means the consultation was not in status from.
	TransitionStatus(db *gorm.DB, id uuid.UUID, from, to entity.ConsultationStatus, fields map[string]interface{}) (int64, error)
	UpdatePrescription(db *gorm.DB, id uuid.UUID, prescription *entity.Prescription) (int64, error)
	UpdatePayment(db *gorm.DB, id uuid.UUID, from, to entity.PaymentStatus) (int64, error)
	// SetRating records a rating on a completed, not yet rated consultation.
	SetRating(db *gorm.DB, id uuid.UUID, rating int, feedback string) (int64, error)
	FindOverdueScheduled(db *gorm.DB, before time.Time, limit int) ([]entity.Consultation, error)
}
