package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb;serializer:json" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is free-form audit metadata, stored as jsonb through gorm's json
// serializer.
type JSON map[string]interface{}

// Audit actions
const (
	AuditActionDoctorCreate     = "doctor.create"
	AuditActionDoctorUpdate     = "doctor.update"
	AuditActionDoctorDeactivate = "doctor.deactivate"

	AuditActionLabTestCreate     = "lab_test.create"
	AuditActionLabTestUpdate     = "lab_test.update"
	AuditActionLabTestDeactivate = "lab_test.deactivate"

	AuditActionMedicineCreate     = "medicine.create"
	AuditActionMedicineUpdate     = "medicine.update"
	AuditActionMedicineDeactivate = "medicine.deactivate"

	AuditActionConsultationBook         = "consultation.book"
	AuditActionConsultationStatus       = "consultation.status"
	AuditActionConsultationPrescription = "consultation.prescription"
	AuditActionConsultationPayment      = "consultation.payment"
	AuditActionConsultationRate         = "consultation.rate"
)
