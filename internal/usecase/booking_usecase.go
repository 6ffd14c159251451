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

// Cancellation reasons shorter than this are rejected
const MinCancellationReasonLen = 10

var (
	ErrSlotConflict        = errors.New("slot was taken by a concurrent booking")
	ErrInvalidCustomerID   = errors.New("invalid customer id")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSiteNotFound        = errors.New("site not found or inactive")
	ErrTypeNotFound        = errors.New("appointment type not found or inactive")
	ErrInvalidDate         = errors.New("invalid date format, use YYYY-MM-DD")
	ErrTimeNotOffered      = errors.New("time is not an offered slot for this site and type")
	ErrReasonTooShort      = errors.New("cancellation reason must have at least 10 characters")
	ErrAlreadyCompleted    = errors.New("appointment is already completed")
)

// BookingUsecase serializes slot reservation so that concurrent callers
// can never double-book a (site, date, time). The guarantee rests on the
// storage layer's atomic conditional insert, not on any in-process lock,
// so any number of stateless instances may run at once.
type BookingUsecase interface {
	// ReserveSlot books the slot or fails with ErrSlotConflict when a
	// racing caller won it first. A conflicted caller must re-query
	// availability; there is no queueing or waitlist.
	ReserveSlot(ctx context.Context, req *dto.ReserveSlotRequest) (*dto.AppointmentResponse, error)
	// CancelReservation frees the slot. Cancelling an appointment that
	// is already cancelled succeeds as a no-op so retries stay safe.
	// Reserved for operators; the route gates it on CITAS update.
	CancelReservation(ctx context.Context, appointmentID uuid.UUID, reason string) error
	// CancelByTicket is the citizen-facing cancellation. Knowing the
	// ticket number printed on the confirmation is the proof of
	// possession; a bare appointment id is not enough.
	CancelByTicket(ctx context.Context, ticketNumber string, reason string) error
}

type bookingUsecase struct {
	log             *logrus.Logger
	siteRepo        repository.SiteRepository
	typeRepo        repository.AppointmentTypeRepository
	hourRepo        repository.AvailableHourRepository
	appointmentRepo repository.AppointmentRepository
	ticketService   *service.TicketService
	auditService    service.AuditService
}

func NewBookingUsecase(
	log *logrus.Logger,
	siteRepo repository.SiteRepository,
	typeRepo repository.AppointmentTypeRepository,
	hourRepo repository.AvailableHourRepository,
	appointmentRepo repository.AppointmentRepository,
	ticketService *service.TicketService,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		log:             log,
		siteRepo:        siteRepo,
		typeRepo:        typeRepo,
		hourRepo:        hourRepo,
		appointmentRepo: appointmentRepo,
		ticketService:   ticketService,
		auditService:    auditService,
	}
}

// ReserveSlot validates the request against current reference data and
// then attempts the single atomic insert.
//
// Flow:
// 1. Validate date, time, site, type
// 2. Check the time is an offered template for the site/type
// 3. Issue ticket number
// 4. Conditional insert; duplicate slot -> ErrSlotConflict
//
// A failed attempt leaves no partial state: the appointment either
// exists fully as pending or not at all.
func (u *bookingUsecase) ReserveSlot(ctx context.Context, req *dto.ReserveSlotRequest) (*dto.AppointmentResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, ErrInvalidCustomerID
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if !validClock(req.Time) {
		return nil, ErrInvalidTimeFormat
	}
	slotTime := normalizeClock(req.Time)

	site, err := u.siteRepo.FindByID(ctx, req.SiteID)
	if err != nil {
		u.log.Warnf("Failed to load site %d: %+v", req.SiteID, err)
		return nil, err
	}
	if site == nil || site.IsActive == nil || !*site.IsActive {
		return nil, ErrSiteNotFound
	}

	appointmentType, err := u.typeRepo.FindByID(ctx, req.AppointmentTypeID)
	if err != nil {
		u.log.Warnf("Failed to load appointment type %d: %+v", req.AppointmentTypeID, err)
		return nil, err
	}
	if appointmentType == nil || appointmentType.IsActive == nil || !*appointmentType.IsActive {
		return nil, ErrTypeNotFound
	}

	// The requested time must come from the site's active templates.
	// Whether the slot is still free is decided by the insert itself.
	templates, err := u.hourRepo.FindActiveForSite(ctx, req.SiteID, &req.AppointmentTypeID)
	if err != nil {
		u.log.Warnf("Failed to load hour templates for site %d: %+v", req.SiteID, err)
		return nil, err
	}
	offered := false
	for i := range templates {
		if normalizeClock(templates[i].Time) == slotTime {
			offered = true
			break
		}
	}
	if !offered {
		return nil, ErrTimeNotOffered
	}

	appointment := &entity.Appointment{
		TicketNumber:      u.ticketService.Next(ctx, day),
		CustomerID:        customerID,
		SiteID:            req.SiteID,
		AppointmentTypeID: req.AppointmentTypeID,
		Date:              day,
		Time:              slotTime,
		Status:            entity.AppointmentStatusPending,
		Notes:             req.Notes,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to insert appointment for slot %d/%s/%s: %+v", req.SiteID, req.Date, slotTime, err)
		return nil, err
	}

	actor := middleware.EmployeeIDFromContext(ctx)
	u.auditService.Record(ctx, actor, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), entity.JSON{
		"ticket_number": appointment.TicketNumber,
		"site_id":       appointment.SiteID,
		"date":          req.Date,
		"time":          slotTime,
	})

	// Reload with site/type info for the response
	fullAppointment, err := u.appointmentRepo.FindByID(ctx, appointment.ID)
	if err != nil || fullAppointment == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Slot reserved: id=%s, ticket=%s, site=%d, date=%s, time=%s",
		appointment.ID, appointment.TicketNumber, appointment.SiteID, req.Date, slotTime)
	return converter.AppointmentToResponse(fullAppointment), nil
}

// CancelReservation transitions pending -> cancelled and frees the slot
// for the availability query. The conditional update decides races; a
// retry that finds the appointment already cancelled is a success.
func (u *bookingUsecase) CancelReservation(ctx context.Context, appointmentID uuid.UUID, reason string) error {
	if len(strings.TrimSpace(reason)) < MinCancellationReasonLen {
		return ErrReasonTooShort
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to load appointment %s: %+v", appointmentID, err)
		return err
	}
	return u.cancel(ctx, appointment, reason)
}

// CancelByTicket resolves the appointment through its ticket number and
// then follows the same transition rules as CancelReservation.
func (u *bookingUsecase) CancelByTicket(ctx context.Context, ticketNumber string, reason string) error {
	if len(strings.TrimSpace(reason)) < MinCancellationReasonLen {
		return ErrReasonTooShort
	}

	appointment, err := u.appointmentRepo.FindByTicketNumber(ctx, ticketNumber)
	if err != nil {
		u.log.Warnf("Failed to load appointment by ticket %s: %+v", ticketNumber, err)
		return err
	}
	return u.cancel(ctx, appointment, reason)
}

func (u *bookingUsecase) cancel(ctx context.Context, appointment *entity.Appointment, reason string) error {
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.IsCancelled() {
		return nil
	}
	if appointment.IsCompleted() {
		return ErrAlreadyCompleted
	}

	rows, err := u.appointmentRepo.MarkCancelled(ctx, appointment.ID, reason)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointment.ID, err)
		return err
	}
	if rows == 0 {
		// Lost a race on the transition; re-read to decide the outcome
		current, err := u.appointmentRepo.FindByID(ctx, appointment.ID)
		if err != nil {
			return err
		}
		if current == nil || current.IsCompleted() {
			return ErrAlreadyCompleted
		}
		return nil
	}

	actor := middleware.EmployeeIDFromContext(ctx)
	u.auditService.Record(ctx, actor, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), entity.JSON{
		"reason":        reason,
		"ticket_number": appointment.TicketNumber,
	})

	u.log.Infof("Appointment cancelled: id=%s", appointment.ID)
	return nil
}
