package repository

import (
	"context"
	"errors"

	"portal-citas-backend/internal/domain/entity"
	domainRepo "portal-citas-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type siteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) domainRepo.SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) FindAll(ctx context.Context) ([]entity.Site, error) {
	var sites []entity.Site
	err := r.db.WithContext(ctx).Order("id ASC").Find(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *siteRepository) FindByID(ctx context.Context, id int) (*entity.Site, error) {
	var site entity.Site
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) Create(ctx context.Context, site *entity.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *siteRepository) Update(ctx context.Context, site *entity.Site) error {
	return r.db.WithContext(ctx).Save(site).Error
}

type appointmentTypeRepository struct {
	db *gorm.DB
}

func NewAppointmentTypeRepository(db *gorm.DB) domainRepo.AppointmentTypeRepository {
	return &appointmentTypeRepository{db: db}
}

func (r *appointmentTypeRepository) FindAll(ctx context.Context) ([]entity.AppointmentType, error) {
	var types []entity.AppointmentType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *appointmentTypeRepository) FindByID(ctx context.Context, id int) (*entity.AppointmentType, error) {
	var appointmentType entity.AppointmentType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointmentType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointmentType, nil
}

func (r *appointmentTypeRepository) Create(ctx context.Context, appointmentType *entity.AppointmentType) error {
	return r.db.WithContext(ctx).Create(appointmentType).Error
}

func (r *appointmentTypeRepository) Update(ctx context.Context, appointmentType *entity.AppointmentType) error {
	return r.db.WithContext(ctx).Save(appointmentType).Error
}

type availableHourRepository struct {
	db *gorm.DB
}

func NewAvailableHourRepository(db *gorm.DB) domainRepo.AvailableHourRepository {
	return &availableHourRepository{db: db}
}

func (r *availableHourRepository) FindActiveForSite(ctx context.Context, siteID int, typeID *int) ([]entity.AvailableHour, error) {
	query := r.db.WithContext(ctx).
		Where("site_id = ? AND is_active = ?", siteID, true)
	if typeID != nil {
		query = query.Where("appointment_type_id IS NULL OR appointment_type_id = ?", *typeID)
	}

	var hours []entity.AvailableHour
	err := query.Order("time ASC").Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *availableHourRepository) FindBySite(ctx context.Context, siteID int) ([]entity.AvailableHour, error) {
	var hours []entity.AvailableHour
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("time ASC").
		Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *availableHourRepository) FindByID(ctx context.Context, id int) (*entity.AvailableHour, error) {
	var hour entity.AvailableHour
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hour, nil
}

func (r *availableHourRepository) Create(ctx context.Context, hour *entity.AvailableHour) error {
	return r.db.WithContext(ctx).Create(hour).Error
}

func (r *availableHourRepository) Update(ctx context.Context, hour *entity.AvailableHour) error {
	return r.db.WithContext(ctx).Save(hour).Error
}
