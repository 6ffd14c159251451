package dto

// CreateSiteRequest registers a new service location
type CreateSiteRequest struct {
	Code      string `json:"code" validate:"required,min=2,max=20"`
	Name      string `json:"name" validate:"required,max=100"`
	Address   string `json:"address" validate:"max=255"`
	City      string `json:"city" validate:"max=100"`
	IsPrimary bool   `json:"is_primary"`
}

// UpdateSiteRequest edits a service location; nil fields are untouched
type UpdateSiteRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	IsPrimary *bool   `json:"is_primary"`
	IsActive  *bool   `json:"is_active"`
}

// SiteResponse is the API shape of a site
type SiteResponse struct {
	ID        int    `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	IsActive  bool   `json:"is_active"`
}

// CreateAppointmentTypeRequest registers a bookable procedure.
// Estimated duration is bounded to one working day.
type CreateAppointmentTypeRequest struct {
	Name                  string `json:"name" validate:"required,max=100"`
	EstimatedMinutes      int    `json:"estimated_minutes" validate:"required,gte=1,lte=480"`
	RequiresDocumentation bool   `json:"requires_documentation"`
}

// UpdateAppointmentTypeRequest edits a procedure; nil fields are untouched
type UpdateAppointmentTypeRequest struct {
	Name                  *string `json:"name"`
	EstimatedMinutes      *int    `json:"estimated_minutes"`
	RequiresDocumentation *bool   `json:"requires_documentation"`
	IsActive              *bool   `json:"is_active"`
}

// AppointmentTypeResponse is the API shape of an appointment type
type AppointmentTypeResponse struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	EstimatedMinutes      int    `json:"estimated_minutes"`
	RequiresDocumentation bool   `json:"requires_documentation"`
	IsActive              bool   `json:"is_active"`
}

// CreateAvailableHourRequest adds a recurring slot template to a site
type CreateAvailableHourRequest struct {
	Time              string `json:"time" validate:"required,hhmm"`
	SiteID            int    `json:"site_id" validate:"required"`
	AppointmentTypeID *int   `json:"appointment_type_id"`
}

// UpdateAvailableHourRequest edits a slot template; nil fields untouched
type UpdateAvailableHourRequest struct {
	Time              *string `json:"time"`
	AppointmentTypeID *int    `json:"appointment_type_id"`
	IsActive          *bool   `json:"is_active"`
}

// AvailableHourResponse is the API shape of a slot template
type AvailableHourResponse struct {
	ID                int    `json:"id"`
	Time              string `json:"time"`
	SiteID            int    `json:"site_id"`
	AppointmentTypeID *int   `json:"appointment_type_id"`
	IsActive          bool   `json:"is_active"`
}
