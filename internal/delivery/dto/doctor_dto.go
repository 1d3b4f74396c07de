package dto

import (
	"time"

	"mediquick-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Specialization  string           `json:"specialization"`
	Qualifications  []string         `json:"qualifications"`
	ExperienceYears int              `json:"experience_years"`
	ConsultationFee decimal.Decimal  `json:"consultation_fee"`
	Languages       []string         `json:"languages"`
	Bio             string           `json:"bio"`
	Availability    []entity.DaySlot `json:"availability"`
	IsActive        *bool            `json:"is_active"`
}

// UpdateDoctorRequest is a partial update; nil fields are left unchanged.
type UpdateDoctorRequest struct {
	Name            *string          `json:"name"`
	Email           *string          `json:"email"`
	Phone           *string          `json:"phone"`
	Specialization  *string          `json:"specialization"`
	Qualifications  []string         `json:"qualifications"`
	ExperienceYears *int             `json:"experience_years"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
	Languages       []string         `json:"languages"`
	Bio             *string          `json:"bio"`
	Availability    []entity.DaySlot `json:"availability"`
	IsActive        *bool            `json:"is_active"`
}

// Response DTOs

type DoctorResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	Phone              string           `json:"phone"`
	Specialization     string           `json:"specialization"`
	Qualifications     []string         `json:"qualifications"`
	ExperienceYears    int              `json:"experience_years"`
	ConsultationFee    decimal.Decimal  `json:"consultation_fee"`
	Languages          []string         `json:"languages"`
	Bio                string           `json:"bio,omitempty"`
	Availability       []entity.DaySlot `json:"availability"`
	Rating             float64          `json:"rating"`
	RatingCount        int              `json:"rating_count"`
	TotalConsultations int              `json:"total_consultations"`
	IsActive           bool             `json:"is_active"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// DoctorSummary is the doctor as embedded in a consultation.
type DoctorSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
}
