package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPopularLimit  = 10
	DefaultFeaturedLimit = 10
	DefaultSearchLimit   = 50
	MaxQueryLimit        = 100
)

// SortRelevance orders by full-text match score and is only meaningful
// together with a Text filter.
const SortRelevance = "relevance"

type SortKey struct {
	Column string
	Desc   bool
}

// LabTestQuery is a declarative read over lab tests: filters, ordered sort
// keys and a limit. The repository translates it to SQL.
type LabTestQuery struct {
	OnlyActive   bool
	OnlyPopular  bool
	OnlyFeatured bool
	Text         string
	Category     string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Sort         []SortKey
	Limit        int
}

type SearchOptions struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Limit    int
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

// PopularTestsQuery selects active popular tests, most ordered first with
// ties broken by rating.
func PopularTestsQuery(limit int) LabTestQuery {
	return LabTestQuery{
		OnlyActive:  true,
		OnlyPopular: true,
		Sort: []SortKey{
			{Column: "order_count", Desc: true},
			{Column: "rating_average", Desc: true},
		},
		Limit: clampLimit(limit, DefaultPopularLimit),
	}
}

func FeaturedTestsQuery(limit int) LabTestQuery {
	return LabTestQuery{
		OnlyActive:   true,
		OnlyFeatured: true,
		Sort:         []SortKey{{Column: "order_count", Desc: true}},
		Limit:        clampLimit(limit, DefaultFeaturedLimit),
	}
}

// SearchTestsQuery matches active tests against text. A missing minimum
// price means 0 and a missing maximum means unbounded.
func SearchTestsQuery(text string, opts SearchOptions) LabTestQuery {
	minPrice := decimal.Zero
	if opts.MinPrice != nil {
		minPrice = *opts.MinPrice
	}
	return LabTestQuery{
		OnlyActive: true,
		Text:       strings.TrimSpace(text),
		Category:   opts.Category,
		MinPrice:   &minPrice,
		MaxPrice:   opts.MaxPrice,
		Sort: []SortKey{
			{Column: SortRelevance, Desc: true},
			{Column: "order_count", Desc: true},
		},
		Limit: clampLimit(opts.Limit, DefaultSearchLimit),
	}
}
