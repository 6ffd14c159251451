package converter

import (
	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/entity"
)

func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	var employeeID *string
	if log.EmployeeID != nil {
		id := log.EmployeeID.String()
		employeeID = &id
	}
	return &dto.AuditLogResponse{
		ID:         log.ID,
		EmployeeID: employeeID,
		Action:     log.Action,
		Metadata:   log.Metadata,
		CreatedAt:  log.CreatedAt,
	}
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
