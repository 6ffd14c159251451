package usecase

import (
	"context"

	"portal-citas-backend/internal/converter"
	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

const (
	defaultAuditListLimit = 50
	maxAuditListLimit     = 200
)

// AuditUsecase exposes the audit trail to portal administrators.
type AuditUsecase interface {
	// ListRecent returns the newest entries first. A limit outside
	// [1, 200] falls back to the default page size.
	ListRecent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error)
}

type auditUsecase struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditUsecase(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditUsecase {
	return &auditUsecase{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditUsecase) ListRecent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	if limit < 1 || limit > maxAuditListLimit {
		limit = defaultAuditListLimit
	}

	logs, err := u.auditRepo.FindRecent(ctx, limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return converter.AuditLogsToResponses(logs), nil
}
