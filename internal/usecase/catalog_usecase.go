package usecase

import (
	"context"
	"errors"

	"portal-citas-backend/internal/converter"
	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/delivery/http/middleware"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/domain/repository"
	"portal-citas-backend/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrRoleNotFound       = errors.New("role not found or inactive")
	ErrPermissionNotFound = errors.New("permission not found")
)

// CatalogUsecase exposes the permission catalog (forms and reusable CRUD
// templates) and the per-role profile of form assignments.
type CatalogUsecase interface {
	ListForms(ctx context.Context) ([]dto.FormResponse, error)
	ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error)
	ListRoles(ctx context.Context) ([]dto.RoleResponse, error)
	// GetAssignment returns the template assigned to (role, form); a
	// pair with no row resolves to an assignment with a null template.
	GetAssignment(ctx context.Context, roleID, formID int) (*dto.AssignmentResponse, error)
	// AssignPermission replaces any prior assignment for the pair.
	// Re-assigning the same template is an idempotent no-op.
	AssignPermission(ctx context.Context, req *dto.AssignPermissionRequest) (*dto.AssignmentResponse, error)
}

type catalogUsecase struct {
	log            *logrus.Logger
	formRepo       repository.FormRepository
	permissionRepo repository.PermissionRepository
	roleRepo       repository.RoleRepository
	rfpRepo        repository.RoleFormPermissionRepository
	auditService   service.AuditService
}

func NewCatalogUsecase(
	log *logrus.Logger,
	formRepo repository.FormRepository,
	permissionRepo repository.PermissionRepository,
	roleRepo repository.RoleRepository,
	rfpRepo repository.RoleFormPermissionRepository,
	auditService service.AuditService,
) CatalogUsecase {
	return &catalogUsecase{
		log:            log,
		formRepo:       formRepo,
		permissionRepo: permissionRepo,
		roleRepo:       roleRepo,
		rfpRepo:        rfpRepo,
		auditService:   auditService,
	}
}

func (u *catalogUsecase) ListForms(ctx context.Context) ([]dto.FormResponse, error) {
	forms, err := u.formRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list forms: %+v", err)
		return nil, err
	}
	return converter.FormsToResponses(forms), nil
}

func (u *catalogUsecase) ListPermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	permissions, err := u.permissionRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list permissions: %+v", err)
		return nil, err
	}
	return converter.PermissionsToResponses(permissions), nil
}

func (u *catalogUsecase) ListRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := u.roleRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list roles: %+v", err)
		return nil, err
	}
	return converter.RolesToResponses(roles), nil
}

func (u *catalogUsecase) GetAssignment(ctx context.Context, roleID, formID int) (*dto.AssignmentResponse, error) {
	if err := u.checkRoleAndForm(ctx, roleID, formID); err != nil {
		return nil, err
	}

	assignment, err := u.rfpRepo.FindByRoleAndForm(ctx, roleID, formID)
	if err != nil {
		u.log.Warnf("Failed to load assignment (%d,%d): %+v", roleID, formID, err)
		return nil, err
	}
	if assignment == nil {
		return &dto.AssignmentResponse{RoleID: roleID, FormID: formID}, nil
	}
	return converter.AssignmentToResponse(assignment), nil
}

func (u *catalogUsecase) AssignPermission(ctx context.Context, req *dto.AssignPermissionRequest) (*dto.AssignmentResponse, error) {
	if err := u.checkRoleAndForm(ctx, req.RoleID, req.FormID); err != nil {
		return nil, err
	}

	if req.PermissionID != nil {
		permission, err := u.permissionRepo.FindByID(ctx, *req.PermissionID)
		if err != nil {
			u.log.Warnf("Failed to load permission %d: %+v", *req.PermissionID, err)
			return nil, err
		}
		if permission == nil {
			return nil, ErrPermissionNotFound
		}
	}

	assignment := &entity.RoleFormPermission{
		RoleID:       req.RoleID,
		FormID:       req.FormID,
		PermissionID: req.PermissionID,
	}
	if err := u.rfpRepo.Upsert(ctx, assignment); err != nil {
		u.log.Warnf("Failed to assign permission (%d,%d): %+v", req.RoleID, req.FormID, err)
		return nil, err
	}

	actor := middleware.EmployeeIDFromContext(ctx)
	metadata := entity.JSON{"role_id": req.RoleID, "form_id": req.FormID}
	if req.PermissionID != nil {
		metadata["permission_id"] = *req.PermissionID
	}
	u.auditService.Record(ctx, actor, entity.AuditActionPermissionAssign, "role_form_permission", "", metadata)

	// Re-read so the response reflects the stored assignment
	stored, err := u.rfpRepo.FindByRoleAndForm(ctx, req.RoleID, req.FormID)
	if err != nil || stored == nil {
		return &dto.AssignmentResponse{RoleID: req.RoleID, FormID: req.FormID, PermissionID: req.PermissionID}, nil
	}
	return converter.AssignmentToResponse(stored), nil
}

func (u *catalogUsecase) checkRoleAndForm(ctx context.Context, roleID, formID int) error {
	role, err := u.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		u.log.Warnf("Failed to load role %d: %+v", roleID, err)
		return err
	}
	if role == nil || role.IsActive == nil || !*role.IsActive {
		return ErrRoleNotFound
	}

	form, err := u.formRepo.FindByID(ctx, formID)
	if err != nil {
		u.log.Warnf("Failed to load form %d: %+v", formID, err)
		return err
	}
	if form == nil {
		return ErrFormNotFound
	}
	return nil
}
