package entity

import (
	"strconv"
	"time"

	"mediquick-api/internal/domain/calc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ConsultationStatus string

const (
	ConsultationScheduled  ConsultationStatus = "scheduled"
	ConsultationInProgress ConsultationStatus = "in-progress"
	ConsultationCompleted  ConsultationStatus = "completed"
	ConsultationCancelled  ConsultationStatus = "cancelled"
	ConsultationNoShow     ConsultationStatus = "no-show"
)

type ConsultationType string

const (
	ConsultationVideo ConsultationType = "video"
	ConsultationAudio ConsultationType = "audio"
	ConsultationChat  ConsultationType = "chat"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var consultationTransitions = map[ConsultationStatus][]ConsultationStatus{
	ConsultationScheduled:  {ConsultationInProgress, ConsultationCancelled, ConsultationNoShow},
	ConsultationInProgress: {ConsultationCompleted, ConsultationCancelled},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentFailed:  {PaymentPaid},
	PaymentPaid:    {PaymentRefunded},
}

// CanTransitionTo reports whether a consultation in status s may move to next.
func (s ConsultationStatus) CanTransitionTo(next ConsultationStatus) bool {
	for _, allowed := range consultationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ConsultationStatus) IsTerminal() bool {
	return len(consultationTransitions[s]) == 0
}

func (s ConsultationStatus) IsValid() bool {
	switch s {
	case ConsultationScheduled, ConsultationInProgress, ConsultationCompleted,
		ConsultationCancelled, ConsultationNoShow:
		return true
	}
	return false
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Medication struct {
	Name         string `json:"name" validate:"required,max=200"`
	Dosage       string `json:"dosage" validate:"required,max=100"`
	Frequency    string `json:"frequency" validate:"required,max=100"`
	Duration     string `json:"duration" validate:"required,max=100"`
	Instructions string `json:"instructions,omitempty" validate:"max=500"`
}

type Prescription struct {
	Medications  []Medication `json:"medications" validate:"dive"`
	Diagnosis    string       `json:"diagnosis,omitempty" validate:"max=2000"`
	Notes        string       `json:"notes,omitempty" validate:"max=2000"`
	FollowUpDate *time.Time   `json:"follow_up_date,omitempty"`
}

// Consultation is a booked appointment between a patient and a doctor.
// AppointmentDate and AppointmentTime are interpreted in UTC.
type Consultation struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id" validate:"required"`
	DoctorID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id" validate:"required"`
	AppointmentDate    time.Time          `gorm:"type:date;not null;index" json:"appointment_date" validate:"required"`
	AppointmentTime    string             `gorm:"type:varchar(5);not null" json:"appointment_time" validate:"required,hhmm"`
	Type               ConsultationType   `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=video audio chat"`
	Status             ConsultationStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status" validate:"required,oneof=scheduled in-progress completed cancelled no-show"`
	Symptoms           string             `gorm:"type:text" json:"symptoms,omitempty" validate:"max=1000"`
	Fee                decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"fee"`
	PaymentStatus      PaymentStatus      `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status" validate:"required,oneof=pending paid failed refunded"`
	Prescription       *Prescription      `gorm:"type:jsonb;serializer:json" json:"prescription,omitempty"`
	StartedAt          *time.Time         `json:"started_at,omitempty"`
	EndedAt            *time.Time         `json:"ended_at,omitempty"`
	CancellationReason string             `gorm:"type:text" json:"cancellation_reason,omitempty" validate:"max=500"`
	Rating             *int               `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Feedback           string             `gorm:"type:text" json:"feedback,omitempty" validate:"max=1000"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty" validate:"-"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// ActualDurationMinutes is the elapsed consultation time, nil until both
// StartedAt and EndedAt are set.
func (c *Consultation) ActualDurationMinutes() *int {
	return calc.ActualDuration(c.StartedAt, c.EndedAt)
}

// AppointmentAt combines the appointment date and time of day.
func (c *Consultation) AppointmentAt() time.Time {
	return CombineDateAndTime(c.AppointmentDate, c.AppointmentTime)
}

// CombineDateAndTime returns the UTC instant for date at hhmm. A malformed
// hhmm yields midnight.
func CombineDateAndTime(date time.Time, hhmm string) time.Time {
	y, m, d := date.Date()
	var hour, minute int
	if len(hhmm) == 5 && hhmm[2] == ':' {
		hour, _ = strconv.Atoi(hhmm[:2])
		minute, _ = strconv.Atoi(hhmm[3:])
	}
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

// IsParticipant reports whether userID is the patient or the doctor.
func (c *Consultation) IsParticipant(userID uuid.UUID) bool {
	return c.PatientID == userID || c.DoctorID == userID
}
