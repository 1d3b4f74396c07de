package converter

import (
	"mediquick-api/internal/delivery/dto"
	"mediquick-api/internal/domain/entity"
)

// AuditLogToResponse lifts the audited entity out of the metadata so
// clients can link an entry without parsing it.
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	resp := &dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	resp.Entity, _ = log.Metadata["entity"].(string)
	resp.EntityID, _ = log.Metadata["entity_id"].(string)
	return resp
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
