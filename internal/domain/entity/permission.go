package entity

// Operation is one of the four CRUD capabilities a permission grants
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Permission is a reusable named bundle of CRUD booleans, assignable to
// any (role, form) pair
type Permission struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
	CanRead     bool   `gorm:"not null;default:false" json:"can_read"`
	CanCreate   bool   `gorm:"not null;default:false" json:"can_create"`
	CanUpdate   bool   `gorm:"not null;default:false" json:"can_update"`
	CanDelete   bool   `gorm:"not null;default:false" json:"can_delete"`
}

func (Permission) TableName() string {
	return "permissions"
}

// Set returns the permission's CRUD booleans as a value set
func (p *Permission) Set() PermissionSet {
	return PermissionSet{
		CanRead:   p.CanRead,
		CanCreate: p.CanCreate,
		CanUpdate: p.CanUpdate,
		CanDelete: p.CanDelete,
	}
}

// PermissionSet is the effective CRUD capability of an actor on a form.
// The zero value grants nothing.
type PermissionSet struct {
	CanRead   bool `json:"can_read"`
	CanCreate bool `json:"can_create"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

// Or combines two sets; a capability is granted if either set grants it
func (s PermissionSet) Or(other PermissionSet) PermissionSet {
	return PermissionSet{
		CanRead:   s.CanRead || other.CanRead,
		CanCreate: s.CanCreate || other.CanCreate,
		CanUpdate: s.CanUpdate || other.CanUpdate,
		CanDelete: s.CanDelete || other.CanDelete,
	}
}

// Allows reports whether the set grants the given operation
func (s PermissionSet) Allows(op Operation) bool {
	switch op {
	case OpRead:
		return s.CanRead
	case OpCreate:
		return s.CanCreate
	case OpUpdate:
		return s.CanUpdate
	case OpDelete:
		return s.CanDelete
	}
	return false
}
