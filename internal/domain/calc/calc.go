// Package calc holds the derived-value rules shared by the pricing, lab
// report and consultation code paths.
package calc

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Report turnaround units.
const (
	UnitHours = "hours"
	UnitDays  = "days"
	UnitWeeks = "weeks"
)

// DiscountAmount is mrp minus the selling price.
func DiscountAmount(mrp, sellingPrice decimal.Decimal) decimal.Decimal {
	return mrp.Sub(sellingPrice)
}

// DiscountPercentage is the whole-number percentage off mrp, 0 when mrp is 0.
func DiscountPercentage(mrp, sellingPrice decimal.Decimal) int {
	if mrp.IsZero() {
		return 0
	}
	pct := mrp.Sub(sellingPrice).Div(mrp).Mul(hundred).Round(0)
	return int(pct.IntPart())
}

// UnitDuration returns the length of one report unit. Unknown units count as
// a day.
func UnitDuration(unit string) time.Duration {
	switch unit {
	case UnitHours:
		return time.Hour
	case UnitDays:
		return 24 * time.Hour
	case UnitWeeks:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// EstimatedReportDate is when a report ordered at now should be ready.
// An unknown unit yields a flat one day offset regardless of value.
func EstimatedReportDate(now time.Time, value int, unit string) time.Time {
	switch unit {
	case UnitHours, UnitDays, UnitWeeks:
		return now.Add(time.Duration(value) * UnitDuration(unit))
	default:
		return now.Add(24 * time.Hour)
	}
}

// ActualDuration returns the whole minutes between start and end, or nil when
// either is unset.
func ActualDuration(start, end *time.Time) *int {
	if start == nil || end == nil {
		return nil
	}
	minutes := int(math.Round(end.Sub(*start).Minutes()))
	return &minutes
}

// IncrementalMean folds rating into a running average over count samples.
func IncrementalMean(avg float64, count int, rating float64) (float64, int) {
	return (avg*float64(count) + rating) / float64(count+1), count + 1
}
