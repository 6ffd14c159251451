package repository

import (
	"context"
	"errors"
	"time"

	"portal-citas-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSlotTaken is returned when a write would put a second non-cancelled
// appointment on the same (site, date, time) slot.
var ErrSlotTaken = errors.New("slot already holds an active appointment")

type SiteRepository interface {
	FindAll(ctx context.Context) ([]entity.Site, error)
	FindByID(ctx context.Context, id int) (*entity.Site, error)
	Create(ctx context.Context, site *entity.Site) error
	Update(ctx context.Context, site *entity.Site) error
}

type AppointmentTypeRepository interface {
	FindAll(ctx context.Context) ([]entity.AppointmentType, error)
	FindByID(ctx context.Context, id int) (*entity.AppointmentType, error)
	Create(ctx context.Context, appointmentType *entity.AppointmentType) error
	Update(ctx context.Context, appointmentType *entity.AppointmentType) error
}

type AvailableHourRepository interface {
	// FindActiveForSite returns the active templates at a site that apply
	// to the given type (templates with a null type apply to every type).
	// A nil typeID matches all templates.
	FindActiveForSite(ctx context.Context, siteID int, typeID *int) ([]entity.AvailableHour, error)
	FindBySite(ctx context.Context, siteID int) ([]entity.AvailableHour, error)
	FindByID(ctx context.Context, id int) (*entity.AvailableHour, error)
	Create(ctx context.Context, hour *entity.AvailableHour) error
	Update(ctx context.Context, hour *entity.AvailableHour) error
}

type AppointmentRepository interface {
	// Create inserts the appointment; the partial unique slot index makes
	// this the atomic conditional insert. ErrSlotTaken is returned when a
	// non-cancelled appointment already holds the slot.
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*entity.Appointment, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]entity.Appointment, error)
	FindBySiteAndDate(ctx context.Context, siteID int, date time.Time) ([]entity.Appointment, error)
	// FindOccupiedTimes returns the times held by non-cancelled
	// appointments at the site on the given date.
	FindOccupiedTimes(ctx context.Context, siteID int, date time.Time) ([]string, error)
	// MarkCancelled transitions pending -> cancelled. Returns affected
	// rows: 1 = transitioned, 0 = appointment was not pending.
	MarkCancelled(ctx context.Context, id uuid.UUID, reason string) (int64, error)
	// MarkCompleted transitions pending -> completed under the same
	// conditional-update contract as MarkCancelled.
	MarkCompleted(ctx context.Context, id uuid.UUID, technician string, technicianNotes *string) (int64, error)
	// UpdateFieldsIfPending edits booking fields only while the
	// appointment is still pending. ErrSlotTaken is returned when a
	// date/time/site change collides with an occupied slot.
	UpdateFieldsIfPending(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	// Delete permanently removes the record. Reserved for the privileged
	// purge operation; normal flows cancel instead.
	Delete(ctx context.Context, id uuid.UUID) error
}
