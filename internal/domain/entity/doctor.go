package entity

import (
	"fmt"
	"strings"
	"time"

	"mediquick-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// DaySlot is one weekday entry of a doctor's weekly availability.
type DaySlot struct {
	Day       string `json:"day" validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
	Available bool   `json:"available"`
}

// Doctor is a consultable practitioner.
type Doctor struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name               string          `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=2,max=100"`
	Email              string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Phone              string          `gorm:"type:varchar(20);not null" json:"phone" validate:"required,phone"`
	Specialization     string          `gorm:"type:varchar(50);not null;index" json:"specialization" validate:"required,specialization"`
	Qualifications     pq.StringArray  `gorm:"type:text[]" json:"qualifications"`
	ExperienceYears    int             `gorm:"not null;default:0" json:"experience_years" validate:"gte=0,lte=50"`
	ConsultationFee    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	Languages          pq.StringArray  `gorm:"type:text[]" json:"languages"`
	Bio                string          `gorm:"type:text" json:"bio,omitempty" validate:"max=1000"`
	Availability       []DaySlot       `gorm:"type:jsonb;serializer:json" json:"availability" validate:"dive"`
	Rating             float64         `gorm:"not null;default:0" json:"rating" validate:"gte=0,lte=5"`
	RatingCount        int             `gorm:"not null;default:0" json:"rating_count" validate:"gte=0"`
	TotalConsultations int             `gorm:"not null;default:0" json:"total_consultations" validate:"gte=0"`
	IsActive           bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// CrossFieldErrors reports constraints that struct tags cannot express.
func (d *Doctor) CrossFieldErrors() []apperror.FieldError {
	var errs []apperror.FieldError

	if d.ConsultationFee.IsNegative() {
		errs = append(errs, apperror.FieldError{
			Field:   "consultation_fee",
			Rule:    "gte",
			Message: "consultation_fee must be greater than or equal to 0",
		})
	}

	for i, slot := range d.Availability {
		if slot.Available && slot.EndTime <= slot.StartTime {
			field := fmt.Sprintf("availability[%d].end_time", i)
			errs = append(errs, apperror.FieldError{
				Field:   field,
				Rule:    "gtfield",
				Message: field + " must be after start_time",
			})
		}
	}

	return errs
}

// IsAvailableOn reports whether hhmm falls inside the declared slot for day.
// A doctor without any declared availability accepts every time.
func (d *Doctor) IsAvailableOn(day time.Weekday, hhmm string) bool {
	if len(d.Availability) == 0 {
		return true
	}

	name := strings.ToLower(day.String())
	for _, slot := range d.Availability {
		if slot.Day != name {
			continue
		}
		if !slot.Available {
			return false
		}
		// HH:MM strings order lexically.
		return hhmm >= slot.StartTime && hhmm < slot.EndTime
	}
	return false
}
