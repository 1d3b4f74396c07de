package repository

import (
	"mediquick-api/internal/domain/entity"

	"gorm.io/gorm"
)

// AuditLogRepository stores the append-only audit trail.
type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB, filter entity.AuditLogFilter, limit, offset int) ([]entity.AuditLog, int64, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
}
