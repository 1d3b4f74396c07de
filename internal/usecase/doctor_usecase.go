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
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, filter entity.DoctorFilter, page, limit int) ([]dto.DoctorResponse, int64, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeactivateDoctor(ctx context.Context, id uuid.UUID) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialization:  req.Specialization,
		Qualifications:  pq.StringArray(req.Qualifications),
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		Languages:       pq.StringArray(req.Languages),
		Bio:             req.Bio,
		Availability:    req.Availability,
		IsActive:        true,
	}
	if req.IsActive != nil {
		doctor.IsActive = *req.IsActive
	}

	if err := u.validator.ValidateEntity(doctor); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		return nil, classifyError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, classifyError(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, filter entity.DoctorFilter, page, limit int) ([]dto.DoctorResponse, int64, error) {
	_, limit, offset := pageOffset(page, limit)

	doctors, total, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), filter, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, 0, classifyError(err)
	}

	return converter.DoctorsToResponses(doctors), total, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, classifyError(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := converter.DoctorToResponse(doctor)
	applyDoctorUpdate(doctor, req)

	if err := u.validator.ValidateEntity(doctor); err != nil {
		return nil, err
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		return nil, classifyError(err)
	}

	newValue := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionDoctorUpdate, "doctor", doctor.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return newValue, nil
}

func applyDoctorUpdate(doctor *entity.Doctor, req *dto.UpdateDoctorRequest) {
	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Qualifications != nil {
		doctor.Qualifications = pq.StringArray(req.Qualifications)
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.Languages != nil {
		doctor.Languages = pq.StringArray(req.Languages)
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.Availability != nil {
		doctor.Availability = req.Availability
	}
	if req.IsActive != nil {
		doctor.IsActive = *req.IsActive
	}
}

func (u *doctorUsecase) DeactivateDoctor(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return classifyError(err)
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if _, err := u.doctorRepo.Deactivate(tx, id); err != nil {
		u.log.Warnf("Failed to deactivate doctor: %+v", err)
		return classifyError(err)
	}

	if err := u.auditService.LogDeactivate(ctx, tx, actorID(ctx), entity.AuditActionDoctorDeactivate, "doctor", id.String(), converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return classifyError(err)
	}

	return nil
}
