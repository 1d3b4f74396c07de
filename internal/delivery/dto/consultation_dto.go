package dto

import (
	"time"

	"mediquick-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type BookConsultationRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,hhmm"`
	Type            string    `json:"type" validate:"required,oneof=video audio chat"`
	Symptoms        string    `json:"symptoms" validate:"max=1000"`
}

type UpdateConsultationStatusRequest struct {
	Status             string `json:"status" validate:"required,oneof=in-progress completed cancelled no-show"`
	CancellationReason string `json:"cancellation_reason" validate:"max=500"`
}

type CancelConsultationRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type PrescriptionRequest struct {
	Medications  []entity.Medication `json:"medications" validate:"required,min=1,dive"`
	Diagnosis    string              `json:"diagnosis" validate:"max=2000"`
	Notes        string              `json:"notes" validate:"max=2000"`
	FollowUpDate string              `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
}

type RateConsultationRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"max=1000"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=paid failed refunded"`
}

// Response DTOs

type ConsultationResponse struct {
	ID                    uuid.UUID            `json:"id"`
	PatientID             uuid.UUID            `json:"patient_id"`
	DoctorID              uuid.UUID            `json:"doctor_id"`
	Doctor                *DoctorSummary       `json:"doctor,omitempty"`
	AppointmentDate       string               `json:"appointment_date"`
	AppointmentTime       string               `json:"appointment_time"`
	Type                  string               `json:"type"`
	Status                string               `json:"status"`
	Symptoms              string               `json:"symptoms,omitempty"`
	Fee                   decimal.Decimal      `json:"fee"`
	PaymentStatus         string               `json:"payment_status"`
	Prescription          *entity.Prescription `json:"prescription,omitempty"`
	StartedAt             *time.Time           `json:"started_at,omitempty"`
	EndedAt               *time.Time           `json:"ended_at,omitempty"`
	ActualDurationMinutes *int                 `json:"actual_duration_minutes,omitempty"`
	CancellationReason    string               `json:"cancellation_reason,omitempty"`
	Rating                *int                 `json:"rating,omitempty"`
	Feedback              string               `json:"feedback,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}
