package repository

import (
	"errors"
	"strings"

	"mediquick-api/internal/domain/entity"
	domainRepo "mediquick-api/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindAll(db *gorm.DB, filter entity.AuditLogFilter, limit, offset int) ([]entity.AuditLog, int64, error) {
	query := db.Model(&entity.AuditLog{})
	if filter.ActionPrefix != "" {
		query = query.Where("action LIKE ?", escapeLike(filter.ActionPrefix)+"%")
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Entity != "" {
		query = query.Where("metadata->>'entity' = ?", filter.Entity)
	}
	if filter.EntityID != "" {
		query = query.Where("metadata->>'entity_id' = ?", filter.EntityID)
	}

	var logs []entity.AuditLog
	total, err := paginate(query, "created_at DESC, id DESC", limit, offset, &logs)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	if err := db.Where("id = ?", id).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
