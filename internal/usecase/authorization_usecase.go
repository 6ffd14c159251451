package usecase

import (
	"context"
	"errors"
	"sort"

	"portal-citas-backend/internal/domain"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrFormNotFound     = errors.New("form not found")
)

// AuthorizationUsecase merges the two permission sources of the portal
// (role-form CRUD assignments and the per-employee tab allow-list) into
// effective capabilities. Every call re-resolves from current data so
// permission edits apply immediately; nothing is cached per session.
type AuthorizationUsecase interface {
	// ResolveFormPermission OR-combines the CRUD booleans of every
	// active role of the employee on the given form. An employee with
	// zero roles resolves to the empty set.
	ResolveFormPermission(ctx context.Context, employeeID uuid.UUID, formCode string) (entity.PermissionSet, error)
	// ResolveVisibleTabs returns the tabs the employee may see: a tab is
	// visible when the employee can read its backing form OR the tab is
	// in the employee allow-list (union semantics, kept as observed in
	// the legacy portal).
	ResolveVisibleTabs(ctx context.Context, employeeID uuid.UUID) ([]string, error)
	// Authorize fails closed with domain.ErrNotAllowed unless the
	// employee holds the operation on the form. Mutating entry points
	// must call this before any side effect.
	Authorize(ctx context.Context, employeeID uuid.UUID, formCode string, op entity.Operation) error
}

type authorizationUsecase struct {
	log          *logrus.Logger
	employeeRepo repository.EmployeeRepository
	formRepo     repository.FormRepository
	rfpRepo      repository.RoleFormPermissionRepository
}

func NewAuthorizationUsecase(
	log *logrus.Logger,
	employeeRepo repository.EmployeeRepository,
	formRepo repository.FormRepository,
	rfpRepo repository.RoleFormPermissionRepository,
) AuthorizationUsecase {
	return &authorizationUsecase{
		log:          log,
		employeeRepo: employeeRepo,
		formRepo:     formRepo,
		rfpRepo:      rfpRepo,
	}
}

// mergeAssignments OR-combines the permission sets contributed by each
// assignment. Assignments without a template contribute nothing.
func mergeAssignments(assignments []entity.RoleFormPermission) entity.PermissionSet {
	var set entity.PermissionSet
	for i := range assignments {
		set = set.Or(assignments[i].Set())
	}
	return set
}

func (u *authorizationUsecase) ResolveFormPermission(ctx context.Context, employeeID uuid.UUID, formCode string) (entity.PermissionSet, error) {
	employee, err := u.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		u.log.Warnf("Failed to load employee %s: %+v", employeeID, err)
		return entity.PermissionSet{}, err
	}
	if employee == nil {
		return entity.PermissionSet{}, ErrEmployeeNotFound
	}
	if employee.IsActive == nil || !*employee.IsActive {
		return entity.PermissionSet{}, nil
	}

	form, err := u.formRepo.FindByCode(ctx, formCode)
	if err != nil {
		u.log.Warnf("Failed to load form %s: %+v", formCode, err)
		return entity.PermissionSet{}, err
	}
	if form == nil {
		return entity.PermissionSet{}, ErrFormNotFound
	}

	roleIDs := employee.ActiveRoleIDs()
	if len(roleIDs) == 0 {
		return entity.PermissionSet{}, nil
	}

	assignments, err := u.rfpRepo.FindByRolesAndForm(ctx, roleIDs, form.ID)
	if err != nil {
		u.log.Warnf("Failed to load assignments for form %s: %+v", formCode, err)
		return entity.PermissionSet{}, err
	}

	return mergeAssignments(assignments), nil
}

func (u *authorizationUsecase) ResolveVisibleTabs(ctx context.Context, employeeID uuid.UUID) ([]string, error) {
	employee, err := u.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		u.log.Warnf("Failed to load employee %s: %+v", employeeID, err)
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	if employee.IsActive == nil || !*employee.IsActive {
		return []string{}, nil
	}

	// Effective read capability per form code, across all active roles
	readable := make(map[string]bool)
	roleIDs := employee.ActiveRoleIDs()
	if len(roleIDs) > 0 {
		assignments, err := u.rfpRepo.FindByRoles(ctx, roleIDs)
		if err != nil {
			u.log.Warnf("Failed to load assignments for employee %s: %+v", employeeID, err)
			return nil, err
		}
		for i := range assignments {
			if assignments[i].Set().CanRead {
				readable[assignments[i].Form.Code] = true
			}
		}
	}

	tabs := make([]string, 0, len(entity.TabForms))
	for tab, formCode := range entity.TabForms {
		if readable[formCode] || employee.HasTab(tab) {
			tabs = append(tabs, tab)
		}
	}
	sort.Strings(tabs)
	return tabs, nil
}

func (u *authorizationUsecase) Authorize(ctx context.Context, employeeID uuid.UUID, formCode string, op entity.Operation) error {
	set, err := u.ResolveFormPermission(ctx, employeeID, formCode)
	if err != nil {
		// An unknown actor or form grants nothing
		if errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrFormNotFound) {
			return domain.ErrNotAllowed
		}
		return err
	}
	if !set.Allows(op) {
		return domain.ErrNotAllowed
	}
	return nil
}
