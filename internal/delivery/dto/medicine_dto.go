package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicineRequest struct {
	Name                 string          `json:"name"`
	GenericName          string          `json:"generic_name"`
	Manufacturer         string          `json:"manufacturer"`
	Category             string          `json:"category"`
	Description          string          `json:"description"`
	Dosage               string          `json:"dosage"`
	PackSize             string          `json:"pack_size"`
	MRP                  decimal.Decimal `json:"mrp"`
	SellingPrice         decimal.Decimal `json:"selling_price"`
	DiscountPercent      *int            `json:"discount_percent"`
	Stock                int             `json:"stock"`
	RequiresPrescription bool            `json:"requires_prescription"`
	IsActive             *bool           `json:"is_active"`
}

// UpdateMedicineRequest is a partial update; nil fields are left unchanged.
type UpdateMedicineRequest struct {
	Name                 *string          `json:"name"`
	GenericName          *string          `json:"generic_name"`
	Manufacturer         *string          `json:"manufacturer"`
	Category             *string          `json:"category"`
	Description          *string          `json:"description"`
	Dosage               *string          `json:"dosage"`
	PackSize             *string          `json:"pack_size"`
	MRP                  *decimal.Decimal `json:"mrp"`
	SellingPrice         *decimal.Decimal `json:"selling_price"`
	DiscountPercent      *int             `json:"discount_percent"`
	Stock                *int             `json:"stock"`
	RequiresPrescription *bool            `json:"requires_prescription"`
	IsActive             *bool            `json:"is_active"`
}

// Response DTOs

type MedicineResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	GenericName          string          `json:"generic_name,omitempty"`
	Manufacturer         string          `json:"manufacturer,omitempty"`
	Category             string          `json:"category"`
	Description          string          `json:"description,omitempty"`
	Dosage               string          `json:"dosage,omitempty"`
	PackSize             string          `json:"pack_size,omitempty"`
	MRP                  decimal.Decimal `json:"mrp"`
	SellingPrice         decimal.Decimal `json:"selling_price"`
	DiscountPercent      int             `json:"discount_percent"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	Stock                int             `json:"stock"`
	RequiresPrescription bool            `json:"requires_prescription"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
