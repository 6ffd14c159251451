package repository

import (
	"context"

	"portal-citas-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	FindByUsername(ctx context.Context, username string) (*entity.Employee, error)
	UpdateAllowedTabs(ctx context.Context, id uuid.UUID, tabs entity.StringList) error
}
