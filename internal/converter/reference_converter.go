package converter

import (
	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/entity"
)

func SiteToResponse(site *entity.Site) *dto.SiteResponse {
	return &dto.SiteResponse{
		ID:        site.ID,
		Code:      site.Code,
		Name:      site.Name,
		Address:   site.Address,
		City:      site.City,
		IsPrimary: site.IsPrimary,
		IsActive:  site.IsActive != nil && *site.IsActive,
	}
}

func SitesToResponses(sites []entity.Site) []dto.SiteResponse {
	responses := make([]dto.SiteResponse, len(sites))
	for i := range sites {
		responses[i] = *SiteToResponse(&sites[i])
	}
	return responses
}

func AppointmentTypeToResponse(appointmentType *entity.AppointmentType) *dto.AppointmentTypeResponse {
	return &dto.AppointmentTypeResponse{
		ID:                    appointmentType.ID,
		Name:                  appointmentType.Name,
		EstimatedMinutes:      appointmentType.EstimatedMinutes,
		RequiresDocumentation: appointmentType.RequiresDocumentation,
		IsActive:              appointmentType.IsActive != nil && *appointmentType.IsActive,
	}
}

func AppointmentTypesToResponses(types []entity.AppointmentType) []dto.AppointmentTypeResponse {
	responses := make([]dto.AppointmentTypeResponse, len(types))
	for i := range types {
		responses[i] = *AppointmentTypeToResponse(&types[i])
	}
	return responses
}

func AvailableHourToResponse(hour *entity.AvailableHour) *dto.AvailableHourResponse {
	return &dto.AvailableHourResponse{
		ID:                hour.ID,
		Time:              hour.Time,
		SiteID:            hour.SiteID,
		AppointmentTypeID: hour.AppointmentTypeID,
		IsActive:          hour.IsActive != nil && *hour.IsActive,
	}
}

func AvailableHoursToResponses(hours []entity.AvailableHour) []dto.AvailableHourResponse {
	responses := make([]dto.AvailableHourResponse, len(hours))
	for i := range hours {
		responses[i] = *AvailableHourToResponse(&hours[i])
	}
	return responses
}
