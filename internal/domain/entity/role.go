package entity

// Role represents a named collection of per-form permission assignments
type Role struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	IsActive *bool  `gorm:"not null;default:true;index" json:"is_active"`

	// Relationships
	FormPermissions []RoleFormPermission `gorm:"foreignKey:RoleID" json:"form_permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role code constants for the seeded roles
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

// RoleFormPermission assigns a permission template to a (role, form) pair.
// At most one row exists per pair; a null PermissionID means no access.
type RoleFormPermission struct {
	ID           int  `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleID       int  `gorm:"not null;uniqueIndex:idx_role_form" json:"role_id"`
	FormID       int  `gorm:"not null;uniqueIndex:idx_role_form" json:"form_id"`
	PermissionID *int `gorm:"index" json:"permission_id"`

	// Relationships
	Role       Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Form       Form        `gorm:"foreignKey:FormID" json:"form,omitempty"`
	Permission *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}

func (RoleFormPermission) TableName() string {
	return "role_form_permissions"
}

// Set returns the CRUD booleans this assignment contributes. A row with
// no permission template contributes nothing.
func (a *RoleFormPermission) Set() PermissionSet {
	if a.Permission == nil {
		return PermissionSet{}
	}
	return a.Permission.Set()
}
