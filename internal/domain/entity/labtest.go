package entity

import (
	"strings"
	"time"

	"mediquick-api/internal/domain/calc"
	"mediquick-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type HomeCollection struct {
	Available bool            `gorm:"not null;default:false" json:"available"`
	Charge    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"charge"`
	FreeAbove decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"free_above"`
}

type NormalRange struct {
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Text string   `json:"text,omitempty"`
}

type TestParameter struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Unit        string      `json:"unit,omitempty" validate:"max=50"`
	NormalRange NormalRange `json:"normal_range"`
}

type LabTest struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Code            string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"code" validate:"required,labcode"`
	Category        string          `gorm:"type:varchar(50);not null;index:idx_lab_tests_category_subcategory" json:"category" validate:"required,labcategory"`
	Subcategory     string          `gorm:"type:varchar(100);index:idx_lab_tests_category_subcategory" json:"subcategory,omitempty" validate:"max=100"`
	Description     string          `gorm:"type:text" json:"description,omitempty" validate:"max=2000"`
	Tags            pq.StringArray  `gorm:"type:text[]" json:"tags"`
	MRP             decimal.Decimal `gorm:"column:mrp;type:decimal(10,2);not null" json:"mrp"`
	SellingPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"selling_price"`
	DiscountPercent int             `gorm:"not null;default:0" json:"discount_percent" validate:"gte=0,lte=100"`
	SampleTypes     pq.StringArray  `gorm:"type:text[]" json:"sample_types" validate:"dive,oneof=blood urine stool saliva swab tissue other"`
	FastingHours    int             `gorm:"not null;default:0" json:"fasting_hours" validate:"gte=0,lte=24"`
	ReportValue     int             `gorm:"not null;default:1" json:"report_value" validate:"gte=1"`
	ReportUnit      string          `gorm:"type:varchar(10);not null;default:'days'" json:"report_unit" validate:"required,oneof=hours days weeks"`
	HomeCollection  HomeCollection  `gorm:"embedded;embeddedPrefix:home_collection_" json:"home_collection"`
	Parameters      []TestParameter `gorm:"type:jsonb;serializer:json" json:"parameters" validate:"dive"`
	AgeMin          int             `gorm:"not null;default:0" json:"age_min" validate:"gte=0,lte=120"`
	AgeMax          int             `gorm:"not null;default:120" json:"age_max" validate:"gte=0,lte=120"`
	Gender          string          `gorm:"type:varchar(10);not null;default:'both'" json:"gender" validate:"required,oneof=male female both"`
	RatingAverage   float64         `gorm:"not null;default:0" json:"rating_average" validate:"gte=0,lte=5"`
	RatingCount     int             `gorm:"not null;default:0" json:"rating_count" validate:"gte=0"`
	OrderCount      int64           `gorm:"not null;default:0;index" json:"order_count" validate:"gte=0"`
	ViewCount       int64           `gorm:"not null;default:0" json:"view_count" validate:"gte=0"`
	IsPopular       bool            `gorm:"not null;default:false;index" json:"is_popular"`
	IsFeatured      bool            `gorm:"not null;default:false;index" json:"is_featured"`
	IsActive        bool            `gorm:"not null;default:true;index" json:"is_active"`
	SearchText      string          `gorm:"type:text" json:"-"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LabTest) TableName() string {
	return "lab_tests"
}

// LabTestCounterColumns are only ever changed by atomic increments and must
// be left out of full-row saves.
var LabTestCounterColumns = []string{"rating_average", "rating_count", "order_count", "view_count"}

// ApplyDefaults fills values a client may omit.
func (t *LabTest) ApplyDefaults() {
	if t.Gender == "" {
		t.Gender = "both"
	}
	if t.ReportUnit == "" {
		t.ReportUnit = calc.UnitDays
	}
	if t.ReportValue == 0 {
		t.ReportValue = 1
	}
	if t.AgeMin == 0 && t.AgeMax == 0 {
		t.AgeMax = 120
	}
	t.Code = strings.ToUpper(strings.TrimSpace(t.Code))
}

func (t *LabTest) CrossFieldErrors() []apperror.FieldError {
	errs := priceErrors(t.MRP, t.SellingPrice)

	if t.HomeCollection.Charge.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "home_collection.charge", Rule: "gte", Message: "home_collection.charge must be greater than or equal to 0"})
	}
	if t.HomeCollection.FreeAbove.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "home_collection.free_above", Rule: "gte", Message: "home_collection.free_above must be greater than or equal to 0"})
	}
	if t.AgeMin > t.AgeMax {
		errs = append(errs, apperror.FieldError{Field: "age_max", Rule: "gtefield", Message: "age_max must be greater than or equal to age_min"})
	}
	for _, p := range t.Parameters {
		r := p.NormalRange
		if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
			errs = append(errs, apperror.FieldError{Field: "parameters", Rule: "range", Message: "normal range min must not exceed max for " + p.Name})
		}
	}
	return errs
}

// BeforeSave derives the discount when none was set and refreshes the
// text used for full-text search.
func (t *LabTest) BeforeSave(tx *gorm.DB) error {
	if t.DiscountPercent == 0 {
		t.DiscountPercent = calc.DiscountPercentage(t.MRP, t.SellingPrice)
	}
	t.SearchText = t.searchDocument()
	return nil
}

func (t *LabTest) searchDocument() string {
	parts := []string{t.Name, t.Code, t.Description}
	parts = append(parts, t.Tags...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (t *LabTest) DiscountAmount() decimal.Decimal {
	return calc.DiscountAmount(t.MRP, t.SellingPrice)
}

func (t *LabTest) EstimatedReportDate(now time.Time) time.Time {
	return calc.EstimatedReportDate(now, t.ReportValue, t.ReportUnit)
}

// HomeCollectionCharge is the sample pickup fee for an order worth orderValue.
func (t *LabTest) HomeCollectionCharge(orderValue decimal.Decimal) decimal.Decimal {
	hc := t.HomeCollection
	if !hc.Available {
		return decimal.Zero
	}
	if hc.FreeAbove.IsPositive() && orderValue.GreaterThanOrEqual(hc.FreeAbove) {
		return decimal.Zero
	}
	return hc.Charge
}

func priceErrors(mrp, sellingPrice decimal.Decimal) []apperror.FieldError {
	var errs []apperror.FieldError
	if mrp.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "mrp", Rule: "gte", Message: "mrp must be greater than or equal to 0"})
	}
	if sellingPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "selling_price", Rule: "gte", Message: "selling_price must be greater than or equal to 0"})
	}
	if sellingPrice.GreaterThan(mrp) {
		errs = append(errs, apperror.FieldError{Field: "selling_price", Rule: "ltefield", Message: "selling_price must not exceed mrp"})
	}
	return errs
}
