package repository

import (
	"strings"
	"testing"

	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	return testutil.NewDryRunDB(t)
}

func TestBuildLabTestQuery_Popular(t *testing.T) {
	db := dryRunDB(t)

	stmt := buildLabTestQuery(db, entity.PopularTestsQuery(3)).Find(&[]entity.LabTest{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "lab_tests"`)
	assert.Contains(t, sql, "is_active = ")
	assert.Contains(t, sql, "is_popular = ")
	assert.NotContains(t, sql, "is_featured")

	orderIdx := strings.Index(sql, `"order_count" DESC`)
	ratingIdx := strings.Index(sql, `"rating_average" DESC`)
	require.NotEqual(t, -1, orderIdx)
	require.NotEqual(t, -1, ratingIdx)
	assert.Less(t, orderIdx, ratingIdx)

	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, stmt.Vars, 3)
}

func TestBuildLabTestQuery_Featured(t *testing.T) {
	db := dryRunDB(t)

	stmt := buildLabTestQuery(db, entity.FeaturedTestsQuery(0)).Find(&[]entity.LabTest{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "is_featured = ")
	assert.Contains(t, sql, `ORDER BY "order_count" DESC`)
	assert.NotContains(t, sql, "rating_average")
	assert.Contains(t, stmt.Vars, entity.DefaultFeaturedLimit)
}

func TestBuildLabTestQuery_Search(t *testing.T) {
	db := dryRunDB(t)
	maxPrice := decimal.NewFromInt(1500)

	q := entity.SearchTestsQuery("thyroid profile", entity.SearchOptions{
		Category: "thyroid",
		MaxPrice: &maxPrice,
	})
	stmt := buildLabTestQuery(db, q).Find(&[]entity.LabTest{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "to_tsvector('english', search_text) @@ to_tsquery('english', ")
	assert.Contains(t, sql, "category = ")
	assert.Contains(t, sql, "selling_price >= ")
	assert.Contains(t, sql, "selling_price <= ")

	rankIdx := strings.Index(sql, "ts_rank(")
	orderIdx := strings.Index(sql, `"order_count" DESC`)
	require.NotEqual(t, -1, rankIdx)
	assert.Less(t, rankIdx, orderIdx)

	assert.Contains(t, stmt.Vars, "thyroid | profile")
	assert.NotContains(t, stmt.Vars, "thyroid profile")
	assert.Contains(t, stmt.Vars, "thyroid")
	assert.Contains(t, stmt.Vars, entity.DefaultSearchLimit)
}

func TestAnyTermQuery(t *testing.T) {
	assert.Equal(t, "thyroid | cbc", anyTermQuery("Thyroid  CBC"))
	assert.Equal(t, "cbc | 01 | vitamin | d3", anyTermQuery("cbc-01 & vitamin:D3!"))
	assert.Equal(t, "", anyTermQuery(" |&!():* "))
}

func TestBuildLabTestQuery_SearchMatchesAnyTerm(t *testing.T) {
	db := dryRunDB(t)

	stmt := buildLabTestQuery(db, entity.SearchTestsQuery("thyroid cbc", entity.SearchOptions{})).
		Find(&[]entity.LabTest{}).Statement
	assert.NotContains(t, stmt.SQL.String(), "plainto_tsquery")
	assert.Contains(t, stmt.Vars, "thyroid | cbc")

	stmt = buildLabTestQuery(dryRunDB(t), entity.SearchTestsQuery("&|!", entity.SearchOptions{})).
		Find(&[]entity.LabTest{}).Statement
	assert.Contains(t, stmt.SQL.String(), "1 = 0")
	assert.NotContains(t, stmt.SQL.String(), "ts_rank")
}

func TestLabTestOrder_IgnoresUnknownColumnsAndRelevanceWithoutText(t *testing.T) {
	_, ok := labTestOrder(entity.LabTestQuery{
		Sort: []entity.SortKey{
			{Column: "id; DROP TABLE lab_tests", Desc: true},
			{Column: entity.SortRelevance, Desc: true},
		},
	})
	assert.False(t, ok)

	expr, ok := labTestOrder(entity.LabTestQuery{Sort: []entity.SortKey{{Column: "name"}}})
	require.True(t, ok)
	assert.Equal(t, "? ASC", expr.SQL)
}

func TestLabTestCounters_AreSingleStatements(t *testing.T) {
	db := dryRunDB(t)
	captured := captureSQL(t, db)
	repo := &labTestRepository{}
	id := uuid.New()

	_, err := repo.ApplyRating(db, id, 4)
	require.NoError(t, err)
	sql := captured()
	assert.True(t, strings.HasPrefix(sql, `UPDATE "lab_tests" SET`))
	assert.Contains(t, sql, "(rating_average * rating_count + $1) / (rating_count + 1)")
	assert.Contains(t, sql, "rating_count + 1")
	assert.Contains(t, sql, "is_active = ")

	_, err = repo.IncrementOrderCount(db, id)
	require.NoError(t, err)
	assert.Contains(t, captured(), "order_count + 1")

	require.NoError(t, repo.AddViewCounts(db, map[uuid.UUID]int64{id: 7}))
	assert.Contains(t, captured(), "view_count + $1")
}
