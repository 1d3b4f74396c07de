package usecase

import (
	"context"
	"errors"
	"time"

	"mediquick-api/internal/converter"
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/delivery/http/middleware"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/domain/repository"
	"mediquick-api/internal/service"
	"mediquick-api/pkg/apperror"
	"mediquick-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	dateLayout       = "2006-01-02"
	noShowSweepBatch = 200
)

type ConsultationUsecase interface {
	BookConsultation(ctx context.Context, req *dto.BookConsultationRequest) (*dto.ConsultationResponse, error)
	GetConsultation(ctx context.Context, id uuid.UUID) (*dto.ConsultationResponse, error)
	ListMyConsultations(ctx context.Context, status entity.ConsultationStatus, page, limit int) ([]dto.ConsultationResponse, int64, error)
	ListDoctorConsultations(ctx context.Context, doctorID uuid.UUID, status entity.ConsultationStatus, page, limit int) ([]dto.ConsultationResponse, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateConsultationStatusRequest) (*dto.ConsultationResponse, error)
	CancelConsultation(ctx context.Context, id uuid.UUID, req *dto.CancelConsultationRequest) (*dto.ConsultationResponse, error)
	SavePrescription(ctx context.Context, id uuid.UUID, req *dto.PrescriptionRequest) (*dto.ConsultationResponse, error)
	RateConsultation(ctx context.Context, id uuid.UUID, req *dto.RateConsultationRequest) (*dto.ConsultationResponse, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.ConsultationResponse, error)
	SweepNoShows(ctx context.Context, grace time.Duration) (int, error)
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	validator        *validator.CustomValidator
	consultationRepo repository.ConsultationRepository
	doctorRepo       repository.DoctorRepository
	auditService     service.AuditService
	now              func() time.Time
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	consultationRepo repository.ConsultationRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		validator:        validator,
		consultationRepo: consultationRepo,
		doctorRepo:       doctorRepo,
		auditService:     auditService,
		now:              time.Now,
	}
}

type caller struct {
	id   uuid.UUID
	role string
}

func callerFrom(ctx context.Context) (caller, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return caller{}, ErrUnauthenticated
	}
	role, _ := middleware.GetRoleFromContext(ctx)
	return caller{id: userID, role: role}, nil
}

func (c caller) isAdmin() bool {
	return c.role == entity.RoleAdmin
}

// canView allows admins and both participants.
func (c caller) canView(consultation *entity.Consultation) bool {
	return c.isAdmin() || consultation.IsParticipant(c.id)
}

// canManage allows admins and the consultation's doctor.
func (c caller) canManage(consultation *entity.Consultation) bool {
	return c.isAdmin() || (c.role == entity.RoleDoctor && consultation.DoctorID == c.id)
}

func (u *consultationUsecase) BookConsultation(ctx context.Context, req *dto.BookConsultationRequest) (*dto.ConsultationResponse, error) {
	who, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if who.role != entity.RolePatient {
		return nil, ErrPatientOnly
	}

	date, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		return nil, apperror.Validation([]apperror.FieldError{{
			Field:   "appointment_date",
			Rule:    "datetime",
			Message: "appointment_date must be a date in YYYY-MM-DD format",
		}})
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, classifyError(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsActive {
		return nil, ErrDoctorInactive
	}

	consultation := &entity.Consultation{
		PatientID:       who.id,
		DoctorID:        doctor.ID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Type:            entity.ConsultationType(req.Type),
		Status:          entity.ConsultationScheduled,
		Symptoms:        req.Symptoms,
		Fee:             doctor.ConsultationFee,
		PaymentStatus:   entity.PaymentPending,
	}

	var extra []apperror.FieldError
	if !consultation.AppointmentAt().After(u.now()) {
		extra = append(extra, apperror.FieldError{
			Field:   "appointment_date",
			Rule:    "future",
			Message: "appointment must be in the future",
		})
	}
	if !doctor.IsAvailableOn(date.Weekday(), req.AppointmentTime) {
		extra = append(extra, apperror.FieldError{
			Field:   "appointment_time",
			Rule:    "availability",
			Message: "doctor is not available at the requested time",
		})
	}
	if err := u.validator.ValidateEntity(consultation, extra...); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.consultationRepo.Create(tx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		return nil, classifyError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, &who.id, entity.AuditActionConsultationBook, "consultation", consultation.ID.String(), converter.ConsultationToResponse(consultation)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	consultation.Doctor = doctor
	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	consultation, err := u.consultationRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation: %+v", err)
		return nil, classifyError(err)
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	return consultation, nil
}

func (u *consultationUsecase) GetConsultation(ctx context.Context, id uuid.UUID) (*dto.ConsultationResponse, error) {
	who, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	consultation, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !who.canView(consultation) {
		return nil, ErrNotParticipant
	}

	return converter.ConsultationToResponse(consultation), nil
}

// ListMyConsultations lists the caller's consultations: as patient, as
// doctor, or every consultation for admins.
func (u *consultationUsecase) ListMyConsultations(ctx context.Context, status entity.ConsultationStatus, page, limit int) ([]dto.ConsultationResponse, int64, error) {
	who, err := callerFrom(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter := entity.ConsultationFilter{Status: status}
	switch who.role {
	case entity.RoleAdmin:
	case entity.RoleDoctor:
		filter.DoctorID = &who.id
	default:
		filter.PatientID = &who.id
	}

	return u.list(ctx, filter, page, limit)
}

func (u *consultationUsecase) ListDoctorConsultations(ctx context.Context, doctorID uuid.UUID, status entity.ConsultationStatus, page, limit int) ([]dto.ConsultationResponse, int64, error) {
	who, err := callerFrom(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !who.isAdmin() && who.id != doctorID {
		return nil, 0, apperror.Forbidden("doctors can only list their own consultations")
	}

	return u.list(ctx, entity.ConsultationFilter{DoctorID: &doctorID, Status: status}, page, limit)
}

func (u *consultationUsecase) list(ctx context.Context, filter entity.ConsultationFilter, page, limit int) ([]dto.ConsultationResponse, int64, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperror.BadRequest("unknown consultation status " + string(filter.Status))
	}

	_, limit, offset := pageOffset(page, limit)
	consultations, total, err := u.consultationRepo.FindAll(u.db.WithContext(ctx), filter, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return nil, 0, classifyError(err)
	}

	return converter.ConsultationsToResponses(consultations), total, nil
}

func (u *consultationUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateConsultationStatusRequest) (*dto.ConsultationResponse, error) {
	who, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.find(tx, id)
	if err != nil {
		return nil, err
	}
	if !who.canManage(consultation) {
		return nil, ErrNotParticipant
	}

	to := entity.ConsultationStatus(req.Status)
	if err := u.transition(ctx, tx, &who.id, consultation, to, req.CancellationReason); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) CancelConsultation(ctx context.Context, id uuid.UUID, req *dto.CancelConsultationRequest) (*dto.ConsultationResponse, error) {
	who, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.find(tx, id)
	if err != nil {
		return nil, err
	}
	if !who.canView(consultation) {
		return nil, ErrNotParticipant
	}

	if err := u.transition(ctx, tx, &who.id, consultation, entity.ConsultationCancelled, req.Reason); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return converter.ConsultationToResponse(consultation), nil
}

// transition applies one FSM step with a conditional update and updates
// consultation in place. Completing a consultation counts it for the doctor.
func (u *consultationUsecase) transition(ctx context.Context, tx *gorm.DB, actor *uuid.UUID, consultation *entity.Consultation, to entity.ConsultationStatus, reason string) error {
	from := consultation.Status
	if !from.CanTransitionTo(to) {
		return ErrInvalidTransition
	}

	now := u.now().UTC()
	fields := map[string]interface{}{}
	switch to {
	case entity.ConsultationInProgress:
		fields["started_at"] = now
	case entity.ConsultationCompleted:
		fields["ended_at"] = now
	case entity.ConsultationCancelled:
		fields["cancellation_reason"] = reason
	}

	rows, err := u.consultationRepo.TransitionStatus(tx, consultation.ID, from, to, fields)
	if err != nil {
		u.log.Warnf("Failed to transition consultation: %+v", err)
		return classifyError(err)
	}
	if rows == 0 {
		return ErrConcurrentTransition
	}

	if to == entity.ConsultationCompleted {
		if err := u.doctorRepo.IncrementConsultations(tx, consultation.DoctorID); err != nil {
			u.log.Warnf("Failed to increment doctor consultations: %+v", err)
			return classifyError(err)
		}
	}

	consultation.Status = to
	switch to {
	case entity.ConsultationInProgress:
		consultation.StartedAt = &now
	case entity.ConsultationCompleted:
		consultation.EndedAt = &now
	case entity.ConsultationCancelled:
		consultation.CancellationReason = reason
	}

	oldValue := map[string]interface{}{"status": from}
	newValue := map[string]interface{}{"status": to}
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionConsultationStatus, "consultation", consultation.ID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *consultationUsecase) SavePrescription(ctx context.Context, id uuid.UUID, req *dto.PrescriptionRequest) (*dto.ConsultationResponse, error) {
	who, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	prescription := &entity.Prescription{
		Medications: req.Medications,
		Diagnosis:   req.Diagnosis,
		Notes:       req.Notes,
	}
	if req.FollowUpDate != "" {
		followUp, err := time.Parse(dateLayout, req.FollowUpDate)
		if err != nil {
			return nil, apperror.Validation([]apperror.FieldError{{
				Field:   "follow_up_date",
				Rule:    "datetime",
				Message: "follow_up_date must be a date in YYYY-MM-DD format",
			}})
		}
		prescription.FollowUpDate = &followUp
	}
	if err := u.validator.ValidateEntity(prescription); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.find(tx, id)
	if err != nil {
		return nil, err
	}
	if !who.canManage(consultation) {
		return nil, ErrNotParticipant
	}
	if consultation.Status != entity.ConsultationInProgress && consultation.Status != entity.ConsultationCompleted {
		return nil, ErrPrescriptionNotOpen
	}

	oldValue := consultation.Prescription
	rows, err := u.consultationRepo.UpdatePrescription(tx, id, prescription)
	if err != nil {
		u.log.Warnf("Failed to save prescription: %+v", err)
		return nil, classifyError(err)
	}
	if rows == 0 {
		return nil, ErrConsultationNotFound
	}
	consultation.Prescription = prescription

	if err := u.auditService.LogUpdate(ctx, tx, &who.id, entity.AuditActionConsultationPrescription, "consultation", id.String(), oldValue, prescription); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return converter.ConsultationToResponse(consultation), nil
}

// RateConsultation records the patient's rating once and folds it into the
// doctor's running average in the same transaction.
func (u *consultationUsecase) RateConsultation(ctx context.Context, id uuid.UUID, req *dto.RateConsultationRequest) (*dto.ConsultationResponse, error) {
	who, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.find(tx, id)
	if err != nil {
		return nil, err
	}
	if consultation.PatientID != who.id {
		return nil, apperror.Forbidden("only the patient can rate a consultation")
	}

	rows, err := u.consultationRepo.SetRating(tx, id, req.Rating, req.Feedback)
	if err != nil {
		u.log.Warnf("Failed to rate consultation: %+v", err)
		return nil, classifyError(err)
	}
	if rows == 0 {
		return nil, ErrRatingNotAllowed
	}

	if _, err := u.doctorRepo.ApplyRating(tx, consultation.DoctorID, req.Rating); err != nil {
		u.log.Warnf("Failed to apply doctor rating: %+v", err)
		return nil, classifyError(err)
	}

	rating := req.Rating
	consultation.Rating = &rating
	consultation.Feedback = req.Feedback

	newValue := map[string]interface{}{"rating": req.Rating, "feedback": req.Feedback}
	if err := u.auditService.LogUpdate(ctx, tx, &who.id, entity.AuditActionConsultationRate, "consultation", id.String(), nil, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) UpdatePayment(ctx context.Context, id uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.ConsultationResponse, error) {
	to := entity.PaymentStatus(req.PaymentStatus)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.find(tx, id)
	if err != nil {
		return nil, err
	}

	from := consultation.PaymentStatus
	if !from.CanTransitionTo(to) {
		return nil, ErrInvalidPayment
	}

	rows, err := u.consultationRepo.UpdatePayment(tx, id, from, to)
	if err != nil {
		u.log.Warnf("Failed to update payment status: %+v", err)
		return nil, classifyError(err)
	}
	if rows == 0 {
		return nil, ErrConcurrentTransition
	}
	consultation.PaymentStatus = to

	oldValue := map[string]interface{}{"payment_status": from}
	newValue := map[string]interface{}{"payment_status": to}
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionConsultationPayment, "consultation", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, classifyError(err)
	}

	return converter.ConsultationToResponse(consultation), nil
}

// SweepNoShows marks scheduled consultations whose appointment passed more
// than grace ago as no-show and returns how many were marked.
func (u *consultationUsecase) SweepNoShows(ctx context.Context, grace time.Duration) (int, error) {
	before := u.now().UTC().Add(-grace)
	marked := 0

	for {
		overdue, err := u.consultationRepo.FindOverdueScheduled(u.db.WithContext(ctx), before, noShowSweepBatch)
		if err != nil {
			u.log.Warnf("Failed to find overdue consultations: %+v", err)
			return marked, classifyError(err)
		}

		progressed := 0
		for i := range overdue {
			ok, err := u.markNoShow(ctx, &overdue[i])
			if err != nil {
				return marked, err
			}
			if ok {
				marked++
				progressed++
			}
		}

		if len(overdue) < noShowSweepBatch || progressed == 0 {
			break
		}
	}

	if marked > 0 {
		u.log.Infof("Marked %d consultations as no-show", marked)
	}
	return marked, nil
}

func (u *consultationUsecase) markNoShow(ctx context.Context, consultation *entity.Consultation) (bool, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	err := u.transition(ctx, tx, nil, consultation, entity.ConsultationNoShow, "")
	if errors.Is(err, ErrConcurrentTransition) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return false, classifyError(err)
	}
	return true, nil
}
