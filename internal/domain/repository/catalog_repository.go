package repository

import (
	"context"

	"portal-citas-backend/internal/domain/entity"
)

type FormRepository interface {
	FindAll(ctx context.Context) ([]entity.Form, error)
	FindByID(ctx context.Context, id int) (*entity.Form, error)
	FindByCode(ctx context.Context, code string) (*entity.Form, error)
}

type PermissionRepository interface {
	FindAll(ctx context.Context) ([]entity.Permission, error)
	FindByID(ctx context.Context, id int) (*entity.Permission, error)
}

type RoleRepository interface {
	FindAll(ctx context.Context) ([]entity.Role, error)
	FindByID(ctx context.Context, id int) (*entity.Role, error)
	FindByCode(ctx context.Context, code string) (*entity.Role, error)
}

type RoleFormPermissionRepository interface {
	// FindByRolesAndForm returns the assignments (permission preloaded)
	// for any of the given roles on one form.
	FindByRolesAndForm(ctx context.Context, roleIDs []int, formID int) ([]entity.RoleFormPermission, error)
	// FindByRoles returns all assignments of the given roles with
	// permission and form preloaded.
	FindByRoles(ctx context.Context, roleIDs []int) ([]entity.RoleFormPermission, error)
	FindByRoleAndForm(ctx context.Context, roleID, formID int) (*entity.RoleFormPermission, error)
	// Upsert replaces any prior assignment for the (role, form) pair.
	Upsert(ctx context.Context, assignment *entity.RoleFormPermission) error
}
