package dto

import (
	"time"

	"mediquick-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	UserID    *uuid.UUID  `json:"user_id,omitempty"`
	Action    string      `json:"action"`
	Entity    string      `json:"entity,omitempty"`
	EntityID  string      `json:"entity_id,omitempty"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}
