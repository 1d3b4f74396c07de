package entity

import "github.com/google/uuid"

// Domain-level list filters. Used by the repository layer to avoid coupling
// with delivery DTOs.

type DoctorFilter struct {
	Specialization  string
	IncludeInactive bool
}

type LabTestFilter struct {
	Category        string
	IncludeInactive bool
}

type MedicineFilter struct {
	Category             string
	Name                 string // ILIKE match on name and generic name
	RequiresPrescription *bool
	IncludeInactive      bool
}

type ConsultationFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    ConsultationStatus
}

type AuditLogFilter struct {
	ActionPrefix string // "consultation." matches every consultation action
	UserID       *uuid.UUID
	Entity       string
	EntityID     string
}
