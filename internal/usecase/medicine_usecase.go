package usecase

import (
	"context"

	"mediquick-api/internal/converter"
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/domain/repository"
	"mediquick-api/internal/service"
	"mediquick-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MedicineUsecase interface {
	CreateMedicine(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	GetMedicine(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	ListMedicines(ctx context.Context, filter entity.MedicineFilter, page, limit int) ([]dto.MedicineResponse, int64, error)
	UpdateMedicine(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	DeactivateMedicine(ctx context.Context, id uuid.UUID) error
}

type medicineUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	medicineRepo repository.MedicineRepository
	auditService service.AuditService
}

func NewMedicineUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	medicineRepo repository.MedicineRepository,
	auditService service.AuditService,
) MedicineUsecase {
	return &medicineUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		medicineRepo: medicineRepo,
		auditService: auditService,
	}
}

func (u *medicineUsecase) CreateMedicine(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine := &entity.Medicine{
		Name:                 req.Name,
		GenericName:          req.GenericName,
		Manufacturer:         req.Manufacturer,
		Category:             req.Category,
		Description:          req.Description,
		Dosage:               req.Dosage,
		PackSize:             req.PackSize,
		MRP:                  req.MRP,
		SellingPrice:         req.SellingPrice,
		Stock:                req.Stock,
		RequiresPrescription: req.RequiresPrescription,
		IsActive:             true,
	}
	if req.DiscountPercent != nil {
		medicine.DiscountPercent = *req.DiscountPercent
	}
	if req.IsActive != nil {
		medicine.IsActive = *req.IsActive
	}

	if err := u.validator.ValidateEntity(medicine); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.medicineRepo.Create(tx, medicine); err != nil {
		u.log.Warnf("Failed to create medicine: %+v", err)
		return nil, classifyError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionMedicineCreate, "medicine", medicine.ID.String(), converter.MedicineToResponse(medicine)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) GetMedicine(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medicine: %+v", err)
		return nil, classifyError(err)
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) ListMedicines(ctx context.Context, filter entity.MedicineFilter, page, limit int) ([]dto.MedicineResponse, int64, error) {
	_, limit, offset := pageOffset(page, limit)

	medicines, total, err := u.medicineRepo.FindAll(u.db.WithContext(ctx), filter, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find all medicines: %+v", err)
		return nil, 0, classifyError(err)
	}

	return converter.MedicinesToResponses(medicines), total, nil
}

func (u *medicineUsecase) UpdateMedicine(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medicine, err := u.medicineRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine: %+v", err)
		return nil, classifyError(err)
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	oldValue := converter.MedicineToResponse(medicine)
	applyMedicineUpdate(medicine, req)

	if err := u.validator.ValidateEntity(medicine); err != nil {
		return nil, err
	}

	if err := u.medicineRepo.Update(tx, medicine); err != nil {
		u.log.Warnf("Failed to update medicine: %+v", err)
		return nil, classifyError(err)
	}

	newValue := converter.MedicineToResponse(medicine)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionMedicineUpdate, "medicine", medicine.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return newValue, nil
}

func applyMedicineUpdate(medicine *entity.Medicine, req *dto.UpdateMedicineRequest) {
	if req.Name != nil {
		medicine.Name = *req.Name
	}
	if req.GenericName != nil {
		medicine.GenericName = *req.GenericName
	}
	if req.Manufacturer != nil {
		medicine.Manufacturer = *req.Manufacturer
	}
	if req.Category != nil {
		medicine.Category = *req.Category
	}
	if req.Description != nil {
		medicine.Description = *req.Description
	}
	if req.Dosage != nil {
		medicine.Dosage = *req.Dosage
	}
	if req.PackSize != nil {
		medicine.PackSize = *req.PackSize
	}
	if req.MRP != nil || req.SellingPrice != nil {
		medicine.DiscountPercent = 0
	}
	if req.MRP != nil {
		medicine.MRP = *req.MRP
	}
	if req.SellingPrice != nil {
		medicine.SellingPrice = *req.SellingPrice
	}
	if req.DiscountPercent != nil {
		medicine.DiscountPercent = *req.DiscountPercent
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}
	if req.RequiresPrescription != nil {
		medicine.RequiresPrescription = *req.RequiresPrescription
	}
	if req.IsActive != nil {
		medicine.IsActive = *req.IsActive
	}
}

func (u *medicineUsecase) DeactivateMedicine(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medicine, err := u.medicineRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine: %+v", err)
		return classifyError(err)
	}
	if medicine == nil {
		return ErrMedicineNotFound
	}

	if _, err := u.medicineRepo.Deactivate(tx, id); err != nil {
		u.log.Warnf("Failed to deactivate medicine: %+v", err)
		return classifyError(err)
	}

	if err := u.auditService.LogDeactivate(ctx, tx, actorID(ctx), entity.AuditActionMedicineDeactivate, "medicine", id.String(), converter.MedicineToResponse(medicine)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return classifyError(err)
	}

	return nil
}
