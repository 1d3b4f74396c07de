package dto

import (
	"time"

	"mediquick-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateLabTestRequest struct {
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Category     string          `json:"category"`
	Subcategory  string          `json:"subcategory"`
	Description  string          `json:"description"`
	Tags         []string        `json:"tags"`
	MRP          decimal.Decimal `json:"mrp"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	// DiscountPercent is derived from MRP and selling price when omitted or 0.
	DiscountPercent *int                   `json:"discount_percent"`
	SampleTypes     []string               `json:"sample_types"`
	FastingHours    int                    `json:"fasting_hours"`
	ReportValue     int                    `json:"report_value"`
	ReportUnit      string                 `json:"report_unit"`
	HomeCollection  entity.HomeCollection  `json:"home_collection"`
	Parameters      []entity.TestParameter `json:"parameters"`
	AgeMin          int                    `json:"age_min"`
	AgeMax          int                    `json:"age_max"`
	Gender          string                 `json:"gender"`
	IsPopular       bool                   `json:"is_popular"`
	IsFeatured      bool                   `json:"is_featured"`
	IsActive        *bool                  `json:"is_active"`
}

// UpdateLabTestRequest is a partial update; nil fields are left unchanged.
// Changing a price without a discount, or setting discount_percent to 0,
// re-derives the discount from the saved prices.
type UpdateLabTestRequest struct {
	Name            *string                `json:"name"`
	Code            *string                `json:"code"`
	Category        *string                `json:"category"`
	Subcategory     *string                `json:"subcategory"`
	Description     *string                `json:"description"`
	Tags            []string               `json:"tags"`
	MRP             *decimal.Decimal       `json:"mrp"`
	SellingPrice    *decimal.Decimal       `json:"selling_price"`
	DiscountPercent *int                   `json:"discount_percent"`
	SampleTypes     []string               `json:"sample_types"`
	FastingHours    *int                   `json:"fasting_hours"`
	ReportValue     *int                   `json:"report_value"`
	ReportUnit      *string                `json:"report_unit"`
	HomeCollection  *entity.HomeCollection `json:"home_collection"`
	Parameters      []entity.TestParameter `json:"parameters"`
	AgeMin          *int                   `json:"age_min"`
	AgeMax          *int                   `json:"age_max"`
	Gender          *string                `json:"gender"`
	IsPopular       *bool                  `json:"is_popular"`
	IsFeatured      *bool                  `json:"is_featured"`
	IsActive        *bool                  `json:"is_active"`
}

type RateRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// Response DTOs

type LabTestResponse struct {
	ID              uuid.UUID              `json:"id"`
	Name            string                 `json:"name"`
	Code            string                 `json:"code"`
	Category        string                 `json:"category"`
	Subcategory     string                 `json:"subcategory,omitempty"`
	Description     string                 `json:"description,omitempty"`
	Tags            []string               `json:"tags"`
	MRP             decimal.Decimal        `json:"mrp"`
	SellingPrice    decimal.Decimal        `json:"selling_price"`
	DiscountPercent int                    `json:"discount_percent"`
	DiscountAmount  decimal.Decimal        `json:"discount_amount"`
	SampleTypes     []string               `json:"sample_types"`
	FastingHours    int                    `json:"fasting_hours"`
	ReportValue     int                    `json:"report_value"`
	ReportUnit      string                 `json:"report_unit"`
	HomeCollection  entity.HomeCollection  `json:"home_collection"`
	Parameters      []entity.TestParameter `json:"parameters"`
	AgeMin          int                    `json:"age_min"`
	AgeMax          int                    `json:"age_max"`
	Gender          string                 `json:"gender"`
	RatingAverage   float64                `json:"rating_average"`
	RatingCount     int                    `json:"rating_count"`
	OrderCount      int64                  `json:"order_count"`
	ViewCount       int64                  `json:"view_count"`
	IsPopular       bool                   `json:"is_popular"`
	IsFeatured      bool                   `json:"is_featured"`
	IsActive        bool                   `json:"is_active"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type ReportETAResponse struct {
	LabTestID           uuid.UUID `json:"lab_test_id"`
	Code                string    `json:"code"`
	ReportValue         int       `json:"report_value"`
	ReportUnit          string    `json:"report_unit"`
	EstimatedReportDate time.Time `json:"estimated_report_date"`
}
