package repository

import (
	"errors"
	"strings"
	"unicode"

	"mediquick-api/internal/domain/entity"
	domainRepo "mediquick-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	searchVectorSQL = "to_tsvector('english', search_text)"
	searchQuerySQL  = "to_tsquery('english', ?)"
)

// anyTermQuery turns free text into a tsquery matching any of its words,
// e.g. "thyroid cbc" -> "thyroid | cbc". Characters with tsquery meaning are
// dropped. Returns "" when no word remains.
func anyTermQuery(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " | ")
}

var labTestSortColumns = map[string]bool{
	"order_count":    true,
	"rating_average": true,
	"view_count":     true,
	"selling_price":  true,
	"name":           true,
	"created_at":     true,
}

type labTestRepository struct{}

func NewLabTestRepository() domainRepo.LabTestRepository {
	return &labTestRepository{}
}

func (r *labTestRepository) Create(db *gorm.DB, test *entity.LabTest) error {
	return db.Create(test).Error
}

func (r *labTestRepository) CreateBatch(db *gorm.DB, tests []entity.LabTest) error {
	return db.CreateInBatches(tests, batchSize).Error
}

func (r *labTestRepository) Count(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.LabTest{}).Count(&total).Error
	return total, err
}

func (r *labTestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabTest, error) {
	return r.findOne(db.Where("id = ?", id))
}

func (r *labTestRepository) FindByCode(db *gorm.DB, code string) (*entity.LabTest, error) {
	return r.findOne(db.Where("code = ?", strings.ToUpper(code)))
}

func (r *labTestRepository) findOne(query *gorm.DB) (*entity.LabTest, error) {
	var test entity.LabTest
	err := query.First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

func (r *labTestRepository) FindAll(db *gorm.DB, filter entity.LabTestFilter, limit, offset int) ([]entity.LabTest, int64, error) {
	query := db.Model(&entity.LabTest{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var tests []entity.LabTest
	total, err := paginate(query, "order_count DESC, name ASC", limit, offset, &tests)
	if err != nil {
		return nil, 0, err
	}
	return tests, total, nil
}

func (r *labTestRepository) Update(db *gorm.DB, test *entity.LabTest) error {
	omit := append([]string{"created_at"}, entity.LabTestCounterColumns...)
	return db.Omit(omit...).Save(test).Error
}

func (r *labTestRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.LabTest{}).Where("id = ?", id).Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *labTestRepository) Query(db *gorm.DB, q entity.LabTestQuery) ([]entity.LabTest, error) {
	var tests []entity.LabTest
	if err := buildLabTestQuery(db, q).Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

// buildLabTestQuery translates a declarative query into filters, ordering
// and limit on db.
func buildLabTestQuery(db *gorm.DB, q entity.LabTestQuery) *gorm.DB {
	query := db.Model(&entity.LabTest{})

	if q.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if q.OnlyPopular {
		query = query.Where("is_popular = ?", true)
	}
	if q.OnlyFeatured {
		query = query.Where("is_featured = ?", true)
	}
	if q.Text != "" {
		if terms := anyTermQuery(q.Text); terms != "" {
			query = query.Where(searchVectorSQL+" @@ "+searchQuerySQL, terms)
		} else {
			query = query.Where("1 = 0")
		}
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.MinPrice != nil {
		query = query.Where("selling_price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("selling_price <= ?", *q.MaxPrice)
	}

	if order, ok := labTestOrder(q); ok {
		query = query.Clauses(clause.OrderBy{Expression: order})
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query
}

func labTestOrder(q entity.LabTestQuery) (clause.Expr, bool) {
	var parts []string
	var vars []interface{}

	for _, key := range q.Sort {
		dir := " ASC"
		if key.Desc {
			dir = " DESC"
		}

		switch {
		case key.Column == entity.SortRelevance:
			terms := anyTermQuery(q.Text)
			if terms == "" {
				continue
			}
			parts = append(parts, "ts_rank("+searchVectorSQL+", "+searchQuerySQL+")"+dir)
			vars = append(vars, terms)
		case labTestSortColumns[key.Column]:
			parts = append(parts, "?"+dir)
			vars = append(vars, clause.Column{Name: key.Column})
		}
	}

	if len(parts) == 0 {
		return clause.Expr{}, false
	}
	return clause.Expr{SQL: strings.Join(parts, ", "), Vars: vars, WithoutParentheses: true}, true
}

func (r *labTestRepository) IncrementOrderCount(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.LabTest{}).Where("id = ? AND is_active = ?", id, true).
		UpdateColumn("order_count", gorm.Expr("order_count + 1"))
	return result.RowsAffected, result.Error
}

func (r *labTestRepository) ApplyRating(db *gorm.DB, id uuid.UUID, rating int) (int64, error) {
	result := db.Model(&entity.LabTest{}).Where("id = ? AND is_active = ?", id, true).UpdateColumns(map[string]interface{}{
		"rating_average": gorm.Expr("(rating_average * rating_count + ?) / (rating_count + 1)", rating),
		"rating_count":   gorm.Expr("rating_count + 1"),
	})
	return result.RowsAffected, result.Error
}

// AddViewCounts adds buffered view increments in one transaction.
func (r *labTestRepository) AddViewCounts(db *gorm.DB, counts map[uuid.UUID]int64) error {
	if len(counts) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for id, n := range counts {
			if n <= 0 {
				continue
			}
			err := tx.Model(&entity.LabTest{}).Where("id = ?", id).
				UpdateColumn("view_count", gorm.Expr("view_count + ?", n)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
