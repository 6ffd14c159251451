package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"portal-citas-backend/internal/converter"
	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/delivery/http/middleware"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/domain/repository"
	"portal-citas-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrTechnicianRequired = errors.New("a non-empty assigned technician is required to complete")
	ErrAlreadyCancelled   = errors.New("appointment is already cancelled")
	ErrNotPending         = errors.New("appointment is no longer pending")
)

// AppointmentUsecase governs the appointment state machine. Pending is
// the only initial status; completed and cancelled are terminal. The
// only transition a terminal appointment accepts is an idempotent
// reassertion of its own status.
type AppointmentUsecase interface {
	// Complete transitions pending -> completed. Requires a non-empty
	// technician; reasserting completed on a completed appointment is a
	// no-op.
	Complete(ctx context.Context, appointmentID uuid.UUID, req *dto.CompleteAppointmentRequest) error
	// Update edits booking fields (date/time/site/type/notes), allowed
	// only while the appointment is still pending.
	Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	// Purge permanently deletes the record. This is the privileged
	// administrative destructive path, distinct from cancellation.
	Purge(ctx context.Context, appointmentID uuid.UUID) error
	GetByID(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetByTicketNumber(ctx context.Context, ticketNumber string) (*dto.AppointmentResponse, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListBySiteAndDate(ctx context.Context, siteID int, date string) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	siteRepo        repository.SiteRepository
	typeRepo        repository.AppointmentTypeRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	siteRepo repository.SiteRepository,
	typeRepo repository.AppointmentTypeRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		siteRepo:        siteRepo,
		typeRepo:        typeRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) Complete(ctx context.Context, appointmentID uuid.UUID, req *dto.CompleteAppointmentRequest) error {
	technician := strings.TrimSpace(req.AssignedTechnician)
	if technician == "" {
		return ErrTechnicianRequired
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to load appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.IsCompleted() {
		return nil
	}
	if appointment.IsCancelled() {
		return ErrAlreadyCancelled
	}

	rows, err := u.appointmentRepo.MarkCompleted(ctx, appointmentID, technician, req.TechnicianNotes)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		current, err := u.appointmentRepo.FindByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		if current != nil && current.IsCompleted() {
			return nil
		}
		return ErrAlreadyCancelled
	}

	actor := middleware.EmployeeIDFromContext(ctx)
	u.auditService.Record(ctx, actor, entity.AuditActionAppointmentComplete, "appointment", appointmentID.String(), entity.JSON{
		"assigned_technician": technician,
	})

	u.log.Infof("Appointment completed: id=%s, technician=%s", appointmentID, technician)
	return nil
}

func (u *appointmentUsecase) Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to load appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsPending() {
		return nil, ErrNotPending
	}

	fields := map[string]interface{}{}
	if req.Date != nil {
		day, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		fields["date"] = day
	}
	if req.Time != nil {
		if !validClock(*req.Time) {
			return nil, ErrInvalidTimeFormat
		}
		fields["time"] = normalizeClock(*req.Time)
	}
	if req.SiteID != nil {
		site, err := u.siteRepo.FindByID(ctx, *req.SiteID)
		if err != nil {
			return nil, err
		}
		if site == nil || site.IsActive == nil || !*site.IsActive {
			return nil, ErrSiteNotFound
		}
		fields["site_id"] = *req.SiteID
	}
	if req.AppointmentTypeID != nil {
		appointmentType, err := u.typeRepo.FindByID(ctx, *req.AppointmentTypeID)
		if err != nil {
			return nil, err
		}
		if appointmentType == nil || appointmentType.IsActive == nil || !*appointmentType.IsActive {
			return nil, ErrTypeNotFound
		}
		fields["appointment_type_id"] = *req.AppointmentTypeID
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		return converter.AppointmentToResponse(appointment), nil
	}

	rows, err := u.appointmentRepo.UpdateFieldsIfPending(ctx, appointmentID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		// Went terminal between the read and the conditional update
		return nil, ErrNotPending
	}

	actor := middleware.EmployeeIDFromContext(ctx)
	u.auditService.Record(ctx, actor, entity.AuditActionAppointmentUpdate, "appointment", appointmentID.String(), entity.JSON{
		"fields": fieldNames(fields),
	})

	updated, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil || updated == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(updated), nil
}

func (u *appointmentUsecase) Purge(ctx context.Context, appointmentID uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to load appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := u.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		u.log.Warnf("Failed to purge appointment %s: %+v", appointmentID, err)
		return err
	}

	actor := middleware.EmployeeIDFromContext(ctx)
	u.auditService.Record(ctx, actor, entity.AuditActionAppointmentPurge, "appointment", appointmentID.String(), entity.JSON{
		"ticket_number": appointment.TicketNumber,
		"status":        string(appointment.Status),
	})

	u.log.Infof("Appointment purged: id=%s, ticket=%s", appointmentID, appointment.TicketNumber)
	return nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to load appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByTicketNumber(ctx context.Context, ticketNumber string) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByTicketNumber(ctx, ticketNumber)
	if err != nil {
		u.log.Warnf("Failed to load appointment by ticket %s: %+v", ticketNumber, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListByCustomer(ctx context.Context, customerID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for customer %s: %+v", customerID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListBySiteAndDate(ctx context.Context, siteID int, date string) (*dto.AppointmentListResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	appointments, err := u.appointmentRepo.FindBySiteAndDate(ctx, siteID, day)
	if err != nil {
		u.log.Warnf("Failed to list appointments for site %d on %s: %+v", siteID, date, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func fieldNames(fields map[string]interface{}) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
