package entity

// Site represents a physical service location with its own slot templates
type Site struct {
	ID        int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Address   string `gorm:"type:varchar(255)" json:"address,omitempty"`
	City      string `gorm:"type:varchar(100)" json:"city,omitempty"`
	IsPrimary bool   `gorm:"not null;default:false" json:"is_primary"`
	IsActive  *bool  `gorm:"not null;default:true;index" json:"is_active"`

	// Relationships
	AvailableHours []AvailableHour `gorm:"foreignKey:SiteID" json:"available_hours,omitempty"`
}

func (Site) TableName() string {
	return "sites"
}
