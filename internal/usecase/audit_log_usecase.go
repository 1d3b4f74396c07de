package usecase

import (
	"context"

	"mediquick-api/internal/converter"
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditLogUsecase is the read side of the audit trail. Entries are only
// written by AuditService inside the transaction being audited.
type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, filter entity.AuditLogFilter, page, limit int) ([]dto.AuditLogResponse, int64, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, filter entity.AuditLogFilter, page, limit int) ([]dto.AuditLogResponse, int64, error) {
	_, limit, offset := pageOffset(page, limit)

	logs, total, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx), filter, limit, offset)
	if err != nil {
		u.log.WithField("filter", filter).Warnf("Failed to list audit logs: %+v", err)
		return nil, 0, classifyError(err)
	}

	return converter.AuditLogsToResponses(logs), total, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, classifyError(err)
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
