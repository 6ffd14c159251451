package dto

import "time"

// ReserveSlotRequest books a (site, date, time) slot for a customer
type ReserveSlotRequest struct {
	CustomerID        string `json:"customer_id" validate:"required,uuid"`
	SiteID            int    `json:"site_id" validate:"required"`
	AppointmentTypeID int    `json:"appointment_type_id" validate:"required"`
	Date              string `json:"date" validate:"required"`
	Time              string `json:"time" validate:"required,hhmm"`
	Notes             string `json:"notes" validate:"max=2000"`
}

// CancelAppointmentRequest cancels a reservation; the reason is kept for
// the audit trail and must carry at least ten characters.
type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,min=10"`
}

// CompleteAppointmentRequest closes an attended appointment
type CompleteAppointmentRequest struct {
	AssignedTechnician string  `json:"assigned_technician" validate:"required,min=1"`
	TechnicianNotes    *string `json:"technician_notes"`
}

// UpdateAppointmentRequest edits booking fields of a pending appointment
type UpdateAppointmentRequest struct {
	SiteID            *int    `json:"site_id"`
	AppointmentTypeID *int    `json:"appointment_type_id"`
	Date              *string `json:"date"`
	Time              *string `json:"time"`
	Notes             *string `json:"notes"`
}

// AppointmentResponse is the API shape of an appointment
type AppointmentResponse struct {
	ID                 string    `json:"id"`
	TicketNumber       string    `json:"ticket_number"`
	CustomerID         string    `json:"customer_id"`
	SiteID             int       `json:"site_id"`
	SiteName           string    `json:"site_name,omitempty"`
	AppointmentTypeID  int       `json:"appointment_type_id"`
	AppointmentType    string    `json:"appointment_type,omitempty"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes,omitempty"`
	AssignedTechnician *string   `json:"assigned_technician,omitempty"`
	TechnicianNotes    *string   `json:"technician_notes,omitempty"`
	CancellationReason *string   `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AppointmentListResponse wraps a list of appointments
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AvailableSlotsResponse lists the open times of a (site, date, type)
type AvailableSlotsResponse struct {
	Date   string   `json:"date"`
	SiteID int      `json:"site_id"`
	Times  []string `json:"times"`
}
