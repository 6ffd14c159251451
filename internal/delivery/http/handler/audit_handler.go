package handler

import (
	"net/http"
	"strconv"

	"portal-citas-backend/internal/usecase"
	"portal-citas-backend/pkg/response"
)

type AuditHandler struct {
	auditUsecase usecase.AuditUsecase
}

func NewAuditHandler(auditUsecase usecase.AuditUsecase) *AuditHandler {
	return &AuditHandler{auditUsecase: auditUsecase}
}

// GetAuditLogs lists the newest audit trail entries. The optional limit
// query parameter bounds the page size.
func (h *AuditHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	logs, err := h.auditUsecase.ListRecent(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
