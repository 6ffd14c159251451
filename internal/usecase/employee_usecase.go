package usecase

import (
	"context"
	"errors"

	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/delivery/http/middleware"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/domain/repository"
	"portal-citas-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrUnknownTab = errors.New("unknown tab identifier")

// EmployeeUsecase manages the per-employee tab allow-list, the second
// permission source merged by the authorization resolver.
type EmployeeUsecase interface {
	// UpdateAllowedTabs replaces the employee's tab allow-list. Every
	// tab must be a known UI section identifier.
	UpdateAllowedTabs(ctx context.Context, employeeID uuid.UUID, req *dto.UpdateAllowedTabsRequest) error
}

type employeeUsecase struct {
	log          *logrus.Logger
	employeeRepo repository.EmployeeRepository
	auditService service.AuditService
}

func NewEmployeeUsecase(
	log *logrus.Logger,
	employeeRepo repository.EmployeeRepository,
	auditService service.AuditService,
) EmployeeUsecase {
	return &employeeUsecase{
		log:          log,
		employeeRepo: employeeRepo,
		auditService: auditService,
	}
}

func (u *employeeUsecase) UpdateAllowedTabs(ctx context.Context, employeeID uuid.UUID, req *dto.UpdateAllowedTabsRequest) error {
	for _, tab := range req.Tabs {
		if _, ok := entity.TabForms[tab]; !ok {
			return ErrUnknownTab
		}
	}

	employee, err := u.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		u.log.Warnf("Failed to load employee %s: %+v", employeeID, err)
		return err
	}
	if employee == nil {
		return ErrEmployeeNotFound
	}

	if err := u.employeeRepo.UpdateAllowedTabs(ctx, employeeID, entity.StringList(req.Tabs)); err != nil {
		u.log.Warnf("Failed to update allowed tabs for %s: %+v", employeeID, err)
		return err
	}

	actor := middleware.EmployeeIDFromContext(ctx)
	u.auditService.Record(ctx, actor, entity.AuditActionTabsUpdate, "employee", employeeID.String(), entity.JSON{
		"tabs": req.Tabs,
	})

	u.log.Infof("Allowed tabs updated for employee %s", employeeID)
	return nil
}
