package service

import (
	"context"

	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records who did what to which record. Lifecycle
// transitions and permission changes are audited; a failed audit write
// is logged but never fails the audited operation.
type AuditService interface {
	Record(ctx context.Context, employeeID *uuid.UUID, action string, entityName string, entityID string, metadata entity.JSON)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, employeeID *uuid.UUID, action string, entityName string, entityID string, metadata entity.JSON) {
	if metadata == nil {
		metadata = entity.JSON{}
	}
	metadata["entity"] = entityName
	metadata["entity_id"] = entityID

	auditLog := &entity.AuditLog{
		EmployeeID: employeeID,
		Action:     action,
		Metadata:   metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to write audit log for %s: %+v", action, err)
	}
}
