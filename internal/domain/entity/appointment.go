package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a concrete booking at a (site, date, time) slot.
// At most one non-cancelled appointment may exist per slot; the partial
// unique index uq_appointments_slot enforces this at the storage layer.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TicketNumber       string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"ticket_number"`
	CustomerID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id"`
	SiteID             int               `gorm:"not null;index" json:"site_id"`
	AppointmentTypeID  int               `gorm:"not null;index" json:"appointment_type_id"`
	Date               time.Time         `gorm:"type:date;not null;index" json:"date"`
	Time               string            `gorm:"type:time;not null" json:"time"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	AssignedTechnician *string           `gorm:"type:varchar(100)" json:"assigned_technician,omitempty"`
	TechnicianNotes    *string           `gorm:"type:text" json:"technician_notes,omitempty"`
	CancellationReason *string           `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Site            Site            `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	AppointmentType AppointmentType `gorm:"foreignKey:AppointmentTypeID" json:"appointment_type,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is still pending
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsCompleted checks if the appointment was completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsTerminal reports whether the appointment reached a final status.
// Completed and cancelled appointments accept no further transition other
// than an idempotent reassertion of the same status.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// CanTransitionTo reports whether moving to the target status is legal.
// Pending is the only initial status; reasserting the current terminal
// status is accepted so retrying clients stay safe.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	if a.Status == target {
		return true
	}
	return a.Status == AppointmentStatusPending &&
		(target == AppointmentStatusCompleted || target == AppointmentStatusCancelled)
}
