package usecase

import (
	"context"
	"errors"

	"portal-citas-backend/internal/converter"
	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrHourNotFound      = errors.New("available hour not found")
	ErrMinutesOutOfRange = errors.New("estimated minutes must be between 1 and 480")
)

// ReferenceUsecase manages the administrator-maintained reference data
// feeding the availability computation: sites, appointment types, and
// recurring hour templates. Deactivation is a soft operation distinct
// from deletion; nothing here hard-deletes.
type ReferenceUsecase interface {
	ListSites(ctx context.Context) ([]dto.SiteResponse, error)
	CreateSite(ctx context.Context, req *dto.CreateSiteRequest) (*dto.SiteResponse, error)
	UpdateSite(ctx context.Context, id int, req *dto.UpdateSiteRequest) (*dto.SiteResponse, error)

	ListAppointmentTypes(ctx context.Context) ([]dto.AppointmentTypeResponse, error)
	CreateAppointmentType(ctx context.Context, req *dto.CreateAppointmentTypeRequest) (*dto.AppointmentTypeResponse, error)
	UpdateAppointmentType(ctx context.Context, id int, req *dto.UpdateAppointmentTypeRequest) (*dto.AppointmentTypeResponse, error)

	ListAvailableHours(ctx context.Context, siteID int) ([]dto.AvailableHourResponse, error)
	CreateAvailableHour(ctx context.Context, req *dto.CreateAvailableHourRequest) (*dto.AvailableHourResponse, error)
	UpdateAvailableHour(ctx context.Context, id int, req *dto.UpdateAvailableHourRequest) (*dto.AvailableHourResponse, error)
}

type referenceUsecase struct {
	log      *logrus.Logger
	siteRepo repository.SiteRepository
	typeRepo repository.AppointmentTypeRepository
	hourRepo repository.AvailableHourRepository
}

func NewReferenceUsecase(
	log *logrus.Logger,
	siteRepo repository.SiteRepository,
	typeRepo repository.AppointmentTypeRepository,
	hourRepo repository.AvailableHourRepository,
) ReferenceUsecase {
	return &referenceUsecase{
		log:      log,
		siteRepo: siteRepo,
		typeRepo: typeRepo,
		hourRepo: hourRepo,
	}
}

func (u *referenceUsecase) ListSites(ctx context.Context) ([]dto.SiteResponse, error) {
	sites, err := u.siteRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list sites: %+v", err)
		return nil, err
	}
	return converter.SitesToResponses(sites), nil
}

func (u *referenceUsecase) CreateSite(ctx context.Context, req *dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	site := &entity.Site{
		Code:      req.Code,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		IsPrimary: req.IsPrimary,
	}
	if err := u.siteRepo.Create(ctx, site); err != nil {
		u.log.Warnf("Failed to create site %s: %+v", req.Code, err)
		return nil, err
	}
	return converter.SiteToResponse(site), nil
}

func (u *referenceUsecase) UpdateSite(ctx context.Context, id int, req *dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	site, err := u.siteRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to load site %d: %+v", id, err)
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.Address != nil {
		site.Address = *req.Address
	}
	if req.City != nil {
		site.City = *req.City
	}
	if req.IsPrimary != nil {
		site.IsPrimary = *req.IsPrimary
	}
	if req.IsActive != nil {
		site.IsActive = req.IsActive
	}

	if err := u.siteRepo.Update(ctx, site); err != nil {
		u.log.Warnf("Failed to update site %d: %+v", id, err)
		return nil, err
	}
	return converter.SiteToResponse(site), nil
}

func (u *referenceUsecase) ListAppointmentTypes(ctx context.Context) ([]dto.AppointmentTypeResponse, error) {
	types, err := u.typeRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list appointment types: %+v", err)
		return nil, err
	}
	return converter.AppointmentTypesToResponses(types), nil
}

func (u *referenceUsecase) CreateAppointmentType(ctx context.Context, req *dto.CreateAppointmentTypeRequest) (*dto.AppointmentTypeResponse, error) {
	if req.EstimatedMinutes < entity.MinEstimatedMinutes || req.EstimatedMinutes > entity.MaxEstimatedMinutes {
		return nil, ErrMinutesOutOfRange
	}

	appointmentType := &entity.AppointmentType{
		Name:                  req.Name,
		EstimatedMinutes:      req.EstimatedMinutes,
		RequiresDocumentation: req.RequiresDocumentation,
	}
	if err := u.typeRepo.Create(ctx, appointmentType); err != nil {
		u.log.Warnf("Failed to create appointment type %s: %+v", req.Name, err)
		return nil, err
	}
	return converter.AppointmentTypeToResponse(appointmentType), nil
}

func (u *referenceUsecase) UpdateAppointmentType(ctx context.Context, id int, req *dto.UpdateAppointmentTypeRequest) (*dto.AppointmentTypeResponse, error) {
	appointmentType, err := u.typeRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to load appointment type %d: %+v", id, err)
		return nil, err
	}
	if appointmentType == nil {
		return nil, ErrTypeNotFound
	}

	if req.Name != nil {
		appointmentType.Name = *req.Name
	}
	if req.EstimatedMinutes != nil {
		if *req.EstimatedMinutes < entity.MinEstimatedMinutes || *req.EstimatedMinutes > entity.MaxEstimatedMinutes {
			return nil, ErrMinutesOutOfRange
		}
		appointmentType.EstimatedMinutes = *req.EstimatedMinutes
	}
	if req.RequiresDocumentation != nil {
		appointmentType.RequiresDocumentation = *req.RequiresDocumentation
	}
	if req.IsActive != nil {
		appointmentType.IsActive = req.IsActive
	}

	if err := u.typeRepo.Update(ctx, appointmentType); err != nil {
		u.log.Warnf("Failed to update appointment type %d: %+v", id, err)
		return nil, err
	}
	return converter.AppointmentTypeToResponse(appointmentType), nil
}

func (u *referenceUsecase) ListAvailableHours(ctx context.Context, siteID int) ([]dto.AvailableHourResponse, error) {
	hours, err := u.hourRepo.FindBySite(ctx, siteID)
	if err != nil {
		u.log.Warnf("Failed to list hours for site %d: %+v", siteID, err)
		return nil, err
	}
	return converter.AvailableHoursToResponses(hours), nil
}

func (u *referenceUsecase) CreateAvailableHour(ctx context.Context, req *dto.CreateAvailableHourRequest) (*dto.AvailableHourResponse, error) {
	if !validClock(req.Time) {
		return nil, ErrInvalidTimeFormat
	}

	site, err := u.siteRepo.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}

	if req.AppointmentTypeID != nil {
		appointmentType, err := u.typeRepo.FindByID(ctx, *req.AppointmentTypeID)
		if err != nil {
			return nil, err
		}
		if appointmentType == nil {
			return nil, ErrTypeNotFound
		}
	}

	hour := &entity.AvailableHour{
		Time:              normalizeClock(req.Time),
		SiteID:            req.SiteID,
		AppointmentTypeID: req.AppointmentTypeID,
	}
	if err := u.hourRepo.Create(ctx, hour); err != nil {
		u.log.Warnf("Failed to create hour template %s for site %d: %+v", req.Time, req.SiteID, err)
		return nil, err
	}
	return converter.AvailableHourToResponse(hour), nil
}

func (u *referenceUsecase) UpdateAvailableHour(ctx context.Context, id int, req *dto.UpdateAvailableHourRequest) (*dto.AvailableHourResponse, error) {
	hour, err := u.hourRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to load hour %d: %+v", id, err)
		return nil, err
	}
	if hour == nil {
		return nil, ErrHourNotFound
	}

	if req.Time != nil {
		if !validClock(*req.Time) {
			return nil, ErrInvalidTimeFormat
		}
		hour.Time = normalizeClock(*req.Time)
	}
	if req.AppointmentTypeID != nil {
		appointmentType, err := u.typeRepo.FindByID(ctx, *req.AppointmentTypeID)
		if err != nil {
			return nil, err
		}
		if appointmentType == nil {
			return nil, ErrTypeNotFound
		}
		hour.AppointmentTypeID = req.AppointmentTypeID
	}
	if req.IsActive != nil {
		hour.IsActive = req.IsActive
	}

	if err := u.hourRepo.Update(ctx, hour); err != nil {
		u.log.Warnf("Failed to update hour %d: %+v", id, err)
		return nil, err
	}
	return converter.AvailableHourToResponse(hour), nil
}
