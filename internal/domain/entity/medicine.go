package entity

import (
	"time"

	"mediquick-api/internal/domain/calc"
	"mediquick-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Medicine struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                 string          `gorm:"type:varchar(200);not null;index" json:"name" validate:"required,min=2,max=200"`
	GenericName          string          `gorm:"type:varchar(200)" json:"generic_name,omitempty" validate:"max=200"`
	Manufacturer         string          `gorm:"type:varchar(200)" json:"manufacturer,omitempty" validate:"max=200"`
	Category             string          `gorm:"type:varchar(20);not null;index" json:"category" validate:"required,medcategory"`
	Description          string          `gorm:"type:text" json:"description,omitempty" validate:"max=2000"`
	Dosage               string          `gorm:"type:varchar(100)" json:"dosage,omitempty" validate:"max=100"`
	PackSize             string          `gorm:"type:varchar(100)" json:"pack_size,omitempty" validate:"max=100"`
	MRP                  decimal.Decimal `gorm:"column:mrp;type:decimal(10,2);not null" json:"mrp"`
	SellingPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"selling_price"`
	DiscountPercent      int             `gorm:"not null;default:0" json:"discount_percent" validate:"gte=0,lte=100"`
	Stock                int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	RequiresPrescription bool            `gorm:"not null;default:false;index" json:"requires_prescription"`
	IsActive             bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Medicine) TableName() string {
	return "medicines"
}

func (m *Medicine) CrossFieldErrors() []apperror.FieldError {
	return priceErrors(m.MRP, m.SellingPrice)
}

func (m *Medicine) BeforeSave(tx *gorm.DB) error {
	if m.DiscountPercent == 0 {
		m.DiscountPercent = calc.DiscountPercentage(m.MRP, m.SellingPrice)
	}
	return nil
}

func (m *Medicine) DiscountAmount() decimal.Decimal {
	return calc.DiscountAmount(m.MRP, m.SellingPrice)
}
