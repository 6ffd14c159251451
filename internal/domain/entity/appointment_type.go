package entity

// Estimated duration bounds for an appointment type, in minutes
const (
	MinEstimatedMinutes = 1
	MaxEstimatedMinutes = 480
)

// AppointmentType represents a kind of procedure a citizen can book
type AppointmentType struct {
	ID                    int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	EstimatedMinutes      int    `gorm:"not null" json:"estimated_minutes"`
	RequiresDocumentation bool   `gorm:"not null;default:false" json:"requires_documentation"`
	IsActive              *bool  `gorm:"not null;default:true;index" json:"is_active"`
}

func (AppointmentType) TableName() string {
	return "appointment_types"
}
