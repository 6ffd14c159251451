package entity

// AvailableHour is a recurring time-of-day slot template for a site.
// A null AppointmentTypeID makes the template apply to every type.
// It is a template, not a booking for a specific day.
type AvailableHour struct {
	ID                int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Time              string `gorm:"type:time;not null" json:"time"`
	SiteID            int    `gorm:"not null;index" json:"site_id"`
	AppointmentTypeID *int   `gorm:"index" json:"appointment_type_id"`
	IsActive          *bool  `gorm:"not null;default:true;index" json:"is_active"`

	// Relationships
	Site            Site             `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	AppointmentType *AppointmentType `gorm:"foreignKey:AppointmentTypeID" json:"appointment_type,omitempty"`
}

func (AvailableHour) TableName() string {
	return "available_hours"
}
