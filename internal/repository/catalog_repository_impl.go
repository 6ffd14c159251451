package repository

import (
	"context"
	"errors"

	"portal-citas-backend/internal/domain/entity"
	domainRepo "portal-citas-backend/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type formRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) domainRepo.FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) FindAll(ctx context.Context) ([]entity.Form, error) {
	var forms []entity.Form
	err := r.db.WithContext(ctx).Order("code ASC").Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepository) FindByID(ctx context.Context, id int) (*entity.Form, error) {
	var form entity.Form
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) FindByCode(ctx context.Context, code string) (*entity.Form, error) {
	var form entity.Form
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &form, nil
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) domainRepo.PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) FindAll(ctx context.Context) ([]entity.Permission, error) {
	var permissions []entity.Permission
	err := r.db.WithContext(ctx).Order("id ASC").Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *permissionRepository) FindByID(ctx context.Context, id int) (*entity.Permission, error) {
	var permission entity.Permission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) domainRepo.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindAll(ctx context.Context) ([]entity.Role, error) {
	var roles []entity.Role
	err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) FindByID(ctx context.Context, id int) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByCode(ctx context.Context, code string) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

type roleFormPermissionRepository struct {
	db *gorm.DB
}

func NewRoleFormPermissionRepository(db *gorm.DB) domainRepo.RoleFormPermissionRepository {
	return &roleFormPermissionRepository{db: db}
}

func (r *roleFormPermissionRepository) FindByRolesAndForm(ctx context.Context, roleIDs []int, formID int) ([]entity.RoleFormPermission, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var assignments []entity.RoleFormPermission
	err := r.db.WithContext(ctx).
		Preload("Permission").
		Where("role_id IN ? AND form_id = ?", roleIDs, formID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *roleFormPermissionRepository) FindByRoles(ctx context.Context, roleIDs []int) ([]entity.RoleFormPermission, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var assignments []entity.RoleFormPermission
	err := r.db.WithContext(ctx).
		Preload("Permission").
		Preload("Form").
		Where("role_id IN ?", roleIDs).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *roleFormPermissionRepository) FindByRoleAndForm(ctx context.Context, roleID, formID int) (*entity.RoleFormPermission, error) {
	var assignment entity.RoleFormPermission
	err := r.db.WithContext(ctx).
		Preload("Permission").
		Where("role_id = ? AND form_id = ?", roleID, formID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// Upsert replaces any prior assignment for the (role, form) pair in a
// single statement so concurrent re-assignments stay last-writer-wins.
func (r *roleFormPermissionRepository) Upsert(ctx context.Context, assignment *entity.RoleFormPermission) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role_id"}, {Name: "form_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"permission_id"}),
		}).
		Create(assignment).Error
}
