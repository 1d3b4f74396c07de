package usecase

import (
	"context"
	"strings"
	"time"

	"mediquick-api/internal/converter"
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/domain/repository"
	"mediquick-api/internal/infrastructure/cache"
	"mediquick-api/internal/service"
	"mediquick-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ViewCounter buffers lab test detail views.
type ViewCounter interface {
	Incr(ctx context.Context, id uuid.UUID) (int64, error)
}

type LabTestUsecase interface {
	CreateLabTest(ctx context.Context, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error)
	UpdateLabTest(ctx context.Context, id uuid.UUID, req *dto.UpdateLabTestRequest) (*dto.LabTestResponse, error)
	DeactivateLabTest(ctx context.Context, id uuid.UUID) error
	GetLabTest(ctx context.Context, id uuid.UUID) (*dto.LabTestResponse, error)
	GetLabTestByCode(ctx context.Context, code string) (*dto.LabTestResponse, error)
	ListLabTests(ctx context.Context, filter entity.LabTestFilter, page, limit int) ([]dto.LabTestResponse, int64, error)
	PopularTests(ctx context.Context, limit int) ([]dto.LabTestResponse, error)
	FeaturedTests(ctx context.Context, limit int) ([]dto.LabTestResponse, error)
	SearchTests(ctx context.Context, text string, opts entity.SearchOptions) ([]dto.LabTestResponse, error)
	RateLabTest(ctx context.Context, id uuid.UUID, rating int) (*dto.LabTestResponse, error)
	RecordOrder(ctx context.Context, id uuid.UUID) (*dto.LabTestResponse, error)
	ReportETA(ctx context.Context, id uuid.UUID) (*dto.ReportETAResponse, error)
}

type labTestUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	labTestRepo  repository.LabTestRepository
	auditService service.AuditService
	queryCache   *cache.QueryCache
	viewCounter  ViewCounter
	now          func() time.Time
}

func NewLabTestUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	labTestRepo repository.LabTestRepository,
	auditService service.AuditService,
	queryCache *cache.QueryCache,
	viewCounter ViewCounter,
) LabTestUsecase {
	return &labTestUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		labTestRepo:  labTestRepo,
		auditService: auditService,
		queryCache:   queryCache,
		viewCounter:  viewCounter,
		now:          time.Now,
	}
}

func (u *labTestUsecase) CreateLabTest(ctx context.Context, req *dto.CreateLabTestRequest) (*dto.LabTestResponse, error) {
	test := &entity.LabTest{
		Name:           req.Name,
		Code:           req.Code,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Description:    req.Description,
		Tags:           pq.StringArray(req.Tags),
		MRP:            req.MRP,
		SellingPrice:   req.SellingPrice,
		SampleTypes:    pq.StringArray(req.SampleTypes),
		FastingHours:   req.FastingHours,
		ReportValue:    req.ReportValue,
		ReportUnit:     req.ReportUnit,
		HomeCollection: req.HomeCollection,
		Parameters:     req.Parameters,
		AgeMin:         req.AgeMin,
		AgeMax:         req.AgeMax,
		Gender:         req.Gender,
		IsPopular:      req.IsPopular,
		IsFeatured:     req.IsFeatured,
		IsActive:       true,
	}
	if req.DiscountPercent != nil {
		test.DiscountPercent = *req.DiscountPercent
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}
	test.ApplyDefaults()

	if err := u.validator.ValidateEntity(test); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.labTestRepo.Create(tx, test); err != nil {
		u.log.Warnf("Failed to create lab test: %+v", err)
		if isDuplicateKeyError(err, "code") {
			return nil, ErrLabTestCodeExists
		}
		return nil, classifyError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionLabTestCreate, "lab_test", test.ID.String(), converter.LabTestToResponse(test)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	u.queryCache.Invalidate()
	return converter.LabTestToResponse(test), nil
}

func (u *labTestUsecase) UpdateLabTest(ctx context.Context, id uuid.UUID, req *dto.UpdateLabTestRequest) (*dto.LabTestResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	test, err := u.labTestRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find lab test: %+v", err)
		return nil, classifyError(err)
	}
	if test == nil {
		return nil, ErrLabTestNotFound
	}

	oldValue := converter.LabTestToResponse(test)
	applyLabTestUpdate(test, req)
	test.ApplyDefaults()

	if err := u.validator.ValidateEntity(test); err != nil {
		return nil, err
	}

	if err := u.labTestRepo.Update(tx, test); err != nil {
		u.log.Warnf("Failed to update lab test: %+v", err)
		if isDuplicateKeyError(err, "code") {
			return nil, ErrLabTestCodeExists
		}
		return nil, classifyError(err)
	}

	newValue := converter.LabTestToResponse(test)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionLabTestUpdate, "lab_test", test.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	u.queryCache.Invalidate()
	return newValue, nil
}

func applyLabTestUpdate(test *entity.LabTest, req *dto.UpdateLabTestRequest) {
	if req.Name != nil {
		test.Name = *req.Name
	}
	if req.Code != nil {
		test.Code = *req.Code
	}
	if req.Category != nil {
		test.Category = *req.Category
	}
	if req.Subcategory != nil {
		test.Subcategory = *req.Subcategory
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.Tags != nil {
		test.Tags = pq.StringArray(req.Tags)
	}
	if req.MRP != nil || req.SellingPrice != nil {
		// a price change without an explicit discount re-derives it on save
		test.DiscountPercent = 0
	}
	if req.MRP != nil {
		test.MRP = *req.MRP
	}
	if req.SellingPrice != nil {
		test.SellingPrice = *req.SellingPrice
	}
	if req.DiscountPercent != nil {
		test.DiscountPercent = *req.DiscountPercent
	}
	if req.SampleTypes != nil {
		test.SampleTypes = pq.StringArray(req.SampleTypes)
	}
	if req.FastingHours != nil {
		test.FastingHours = *req.FastingHours
	}
	if req.ReportValue != nil {
		test.ReportValue = *req.ReportValue
	}
	if req.ReportUnit != nil {
		test.ReportUnit = *req.ReportUnit
	}
	if req.HomeCollection != nil {
		test.HomeCollection = *req.HomeCollection
	}
	if req.Parameters != nil {
		test.Parameters = req.Parameters
	}
	if req.AgeMin != nil {
		test.AgeMin = *req.AgeMin
	}
	if req.AgeMax != nil {
		test.AgeMax = *req.AgeMax
	}
	if req.Gender != nil {
		test.Gender = *req.Gender
	}
	if req.IsPopular != nil {
		test.IsPopular = *req.IsPopular
	}
	if req.IsFeatured != nil {
		test.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}
}

func (u *labTestUsecase) DeactivateLabTest(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	test, err := u.labTestRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find lab test: %+v", err)
		return classifyError(err)
	}
	if test == nil {
		return ErrLabTestNotFound
	}

	if _, err := u.labTestRepo.Deactivate(tx, id); err != nil {
		u.log.Warnf("Failed to deactivate lab test: %+v", err)
		return classifyError(err)
	}

	if err := u.auditService.LogDeactivate(ctx, tx, actorID(ctx), entity.AuditActionLabTestDeactivate, "lab_test", id.String(), converter.LabTestToResponse(test)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return classifyError(err)
	}

	u.queryCache.Invalidate()
	return nil
}

// GetLabTest returns an active lab test and records a view. The reported
// view count includes views not yet flushed to the database.
func (u *labTestUsecase) GetLabTest(ctx context.Context, id uuid.UUID) (*dto.LabTestResponse, error) {
	test, err := u.labTestRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find lab test: %+v", err)
		return nil, classifyError(err)
	}
	if test == nil || !test.IsActive {
		return nil, ErrLabTestNotFound
	}

	pending, err := u.viewCounter.Incr(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to record lab test view: %+v", err)
	}
	test.ViewCount += pending

	return converter.LabTestToResponse(test), nil
}

func (u *labTestUsecase) GetLabTestByCode(ctx context.Context, code string) (*dto.LabTestResponse, error) {
	test, err := u.labTestRepo.FindByCode(u.db.WithContext(ctx), strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		u.log.Warnf("Failed to find lab test by code: %+v", err)
		return nil, classifyError(err)
	}
	if test == nil || !test.IsActive {
		return nil, ErrLabTestNotFound
	}

	return converter.LabTestToResponse(test), nil
}

func (u *labTestUsecase) ListLabTests(ctx context.Context, filter entity.LabTestFilter, page, limit int) ([]dto.LabTestResponse, int64, error) {
	_, limit, offset := pageOffset(page, limit)

	tests, total, err := u.labTestRepo.FindAll(u.db.WithContext(ctx), filter, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find all lab tests: %+v", err)
		return nil, 0, classifyError(err)
	}

	return converter.LabTestsToResponses(tests), total, nil
}

func (u *labTestUsecase) PopularTests(ctx context.Context, limit int) ([]dto.LabTestResponse, error) {
	q := entity.PopularTestsQuery(limit)
	return u.cachedQuery(ctx, cache.PopularKey(q.Limit), q)
}

func (u *labTestUsecase) FeaturedTests(ctx context.Context, limit int) ([]dto.LabTestResponse, error) {
	q := entity.FeaturedTestsQuery(limit)
	return u.cachedQuery(ctx, cache.FeaturedKey(q.Limit), q)
}

func (u *labTestUsecase) cachedQuery(ctx context.Context, key string, q entity.LabTestQuery) ([]dto.LabTestResponse, error) {
	if tests, ok := u.queryCache.Get(key); ok {
		return converter.LabTestsToResponses(tests), nil
	}

	tests, err := u.labTestRepo.Query(u.db.WithContext(ctx), q)
	if err != nil {
		u.log.Warnf("Failed to query lab tests: %+v", err)
		return nil, classifyError(err)
	}

	u.queryCache.Set(key, tests)
	return converter.LabTestsToResponses(tests), nil
}

func (u *labTestUsecase) SearchTests(ctx context.Context, text string, opts entity.SearchOptions) ([]dto.LabTestResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []dto.LabTestResponse{}, nil
	}
	q := entity.SearchTestsQuery(text, opts)

	tests, err := u.labTestRepo.Query(u.db.WithContext(ctx), q)
	if err != nil {
		u.log.Warnf("Failed to search lab tests: %+v", err)
		return nil, classifyError(err)
	}

	return converter.LabTestsToResponses(tests), nil
}

func (u *labTestUsecase) RateLabTest(ctx context.Context, id uuid.UUID, rating int) (*dto.LabTestResponse, error) {
	db := u.db.WithContext(ctx)

	rows, err := u.labTestRepo.ApplyRating(db, id, rating)
	if err != nil {
		u.log.Warnf("Failed to rate lab test: %+v", err)
		return nil, classifyError(err)
	}
	if rows == 0 {
		return nil, ErrLabTestNotFound
	}

	u.queryCache.Invalidate()
	return u.reload(db, id)
}

// RecordOrder counts one order of the lab test.
func (u *labTestUsecase) RecordOrder(ctx context.Context, id uuid.UUID) (*dto.LabTestResponse, error) {
	db := u.db.WithContext(ctx)

	rows, err := u.labTestRepo.IncrementOrderCount(db, id)
	if err != nil {
		u.log.Warnf("Failed to record lab test order: %+v", err)
		return nil, classifyError(err)
	}
	if rows == 0 {
		return nil, ErrLabTestNotFound
	}

	u.queryCache.Invalidate()
	return u.reload(db, id)
}

func (u *labTestUsecase) reload(db *gorm.DB, id uuid.UUID) (*dto.LabTestResponse, error) {
	test, err := u.labTestRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find lab test: %+v", err)
		return nil, classifyError(err)
	}
	if test == nil {
		return nil, ErrLabTestNotFound
	}
	return converter.LabTestToResponse(test), nil
}

func (u *labTestUsecase) ReportETA(ctx context.Context, id uuid.UUID) (*dto.ReportETAResponse, error) {
	test, err := u.labTestRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find lab test: %+v", err)
		return nil, classifyError(err)
	}
	if test == nil || !test.IsActive {
		return nil, ErrLabTestNotFound
	}

	return &dto.ReportETAResponse{
		LabTestID:           test.ID,
		Code:                test.Code,
		ReportValue:         test.ReportValue,
		ReportUnit:          test.ReportUnit,
		EstimatedReportDate: test.EstimatedReportDate(u.now().UTC()),
	}, nil
}
