package repository

import (
	"context"
	"errors"
	"time"

	"portal-citas-backend/internal/domain/entity"
	domainRepo "portal-citas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate-key errors
const uniqueViolation = "23505"

// slotIndexName is the partial unique index over (site_id, date, time)
// WHERE status <> 'cancelled'; see db/migrations.
const slotIndexName = "uq_appointments_slot"

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// translateSlotConflict maps a duplicate-key error on the slot index to
// ErrSlotTaken. Other errors pass through untouched.
func translateSlotConflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == slotIndexName {
		return domainRepo.ErrSlotTaken
	}
	return err
}

// Create is the atomic conditional insert backing slot reservation. The
// partial unique index rejects a second non-cancelled appointment on the
// same (site_id, date, time) inside the INSERT itself, so racing callers
// never see a read-then-write window.
func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	err := r.db.WithContext(ctx).Create(appointment).Error
	return translateSlotConflict(err)
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Site").
		Preload("AppointmentType").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Site").
		Preload("AppointmentType").
		Where("ticket_number = ?", ticketNumber).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Site").
		Preload("AppointmentType").
		Where("customer_id = ?", customerID).
		Order("date DESC, time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBySiteAndDate(ctx context.Context, siteID int, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("AppointmentType").
		Where("site_id = ? AND date = ?", siteID, date).
		Order("time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindOccupiedTimes(ctx context.Context, siteID int, date time.Time) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("site_id = ? AND date = ? AND status != ?", siteID, date, entity.AppointmentStatusCancelled).
		Order("time ASC").
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// MarkCancelled atomically cancels the appointment ONLY while it is still
// pending. Returns affected rows: 1 = transitioned, 0 = not pending.
func (r *appointmentRepository) MarkCancelled(ctx context.Context, id uuid.UUID, reason string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusPending).
		Updates(map[string]interface{}{
			"status":              entity.AppointmentStatusCancelled,
			"cancellation_reason": reason,
		})
	return result.RowsAffected, result.Error
}

// MarkCompleted atomically completes the appointment ONLY while pending
func (r *appointmentRepository) MarkCompleted(ctx context.Context, id uuid.UUID, technician string, technicianNotes *string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusPending).
		Updates(map[string]interface{}{
			"status":              entity.AppointmentStatusCompleted,
			"assigned_technician": technician,
			"technician_notes":    technicianNotes,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateFieldsIfPending(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusPending).
		Updates(fields)
	return result.RowsAffected, translateSlotConflict(result.Error)
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Appointment{}, "id = ?", id).Error
}
