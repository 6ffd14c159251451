package converter

import (
	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/entity"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:                 appointment.ID.String(),
		TicketNumber:       appointment.TicketNumber,
		CustomerID:         appointment.CustomerID.String(),
		SiteID:             appointment.SiteID,
		SiteName:           appointment.Site.Name,
		AppointmentTypeID:  appointment.AppointmentTypeID,
		AppointmentType:    appointment.AppointmentType.Name,
		Date:               appointment.Date.Format("2006-01-02"),
		Time:               appointment.Time,
		Status:             string(appointment.Status),
		Notes:              appointment.Notes,
		AssignedTechnician: appointment.AssignedTechnician,
		TechnicianNotes:    appointment.TechnicianNotes,
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
