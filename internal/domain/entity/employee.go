package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Employee represents a portal operator. Roles drive CRUD capabilities;
// AllowedTabs is an independent per-employee allow-list that only gates
// tab visibility.
type Employee struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username    string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	AllowedTabs StringList `gorm:"type:jsonb" json:"allowed_tabs"`
	IsActive    *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Roles []Role `gorm:"many2many:employee_roles" json:"roles,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}

// ActiveRoleIDs returns the ids of the employee's active roles
func (e *Employee) ActiveRoleIDs() []int {
	ids := make([]int, 0, len(e.Roles))
	for _, r := range e.Roles {
		if r.IsActive != nil && *r.IsActive {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// HasTab reports whether the tab appears in the employee allow-list
func (e *Employee) HasTab(tab string) bool {
	for _, t := range e.AllowedTabs {
		if t == tab {
			return true
		}
	}
	return false
}

// StringList type for GORM JSONB support
type StringList []string

// Value returns json value, implement driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan scan value into StringList, implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := []string{}
	err := json.Unmarshal(bytes, &result)
	*l = StringList(result)
	return err
}
