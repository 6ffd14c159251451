package repository

import (
	"context"
	"errors"

	"portal-citas-backend/internal/domain/entity"
	domainRepo "portal-citas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) UpdateAllowedTabs(ctx context.Context, id uuid.UUID, tabs entity.StringList) error {
	return r.db.WithContext(ctx).
		Model(&entity.Employee{}).
		Where("id = ?", id).
		Update("allowed_tabs", tabs).Error
}
