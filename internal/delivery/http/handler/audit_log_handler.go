package handler

import (
	"net/http"
	"strconv"

	"mediquick-api/internal/domain/entity"
	"mediquick-api/internal/usecase"
	"mediquick-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || auditLogID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		response.FromError(w, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// GetAllAuditLogs lists entries newest first, optionally narrowed by
// action prefix, acting user or audited entity.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.AuditLogFilter{
		ActionPrefix: q.Get("action"),
		Entity:       q.Get("entity"),
		EntityID:     q.Get("entity_id"),
	}
	if raw := q.Get("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid user_id", nil)
			return
		}
		filter.UserID = &userID
	}

	page, limit := pagination(r)
	auditLogs, total, err := h.auditLogUsecase.ListAuditLogs(r.Context(), filter, page, limit)
	if err != nil {
		response.FromError(w, err, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", response.NewPage(auditLogs, total, page, limit))
}
