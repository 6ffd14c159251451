package dto

// FormResponse describes a protectable portal module
type FormResponse struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// PermissionResponse describes a reusable CRUD template
type PermissionResponse struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	CanRead     bool   `json:"can_read"`
	CanCreate   bool   `json:"can_create"`
	CanUpdate   bool   `json:"can_update"`
	CanDelete   bool   `json:"can_delete"`
}

// RoleResponse describes a role
type RoleResponse struct {
	ID       int    `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// AssignPermissionRequest replaces the permission template assigned to a
// (role, form) pair; a null permission_id revokes access.
type AssignPermissionRequest struct {
	RoleID       int  `json:"role_id" validate:"required"`
	FormID       int  `json:"form_id" validate:"required"`
	PermissionID *int `json:"permission_id"`
}

// AssignmentResponse describes the template assigned to a (role, form)
type AssignmentResponse struct {
	RoleID       int                 `json:"role_id"`
	FormID       int                 `json:"form_id"`
	PermissionID *int                `json:"permission_id"`
	Permission   *PermissionResponse `json:"permission,omitempty"`
}

// EffectivePermissionResponse is the resolved CRUD capability of an
// actor on one form
type EffectivePermissionResponse struct {
	FormCode  string `json:"form_code"`
	CanRead   bool   `json:"can_read"`
	CanCreate bool   `json:"can_create"`
	CanUpdate bool   `json:"can_update"`
	CanDelete bool   `json:"can_delete"`
}

// VisibleTabsResponse lists the tabs the actor may see
type VisibleTabsResponse struct {
	Tabs []string `json:"tabs"`
}

// UpdateAllowedTabsRequest replaces an employee's tab allow-list
type UpdateAllowedTabsRequest struct {
	Tabs []string `json:"tabs" validate:"required,dive,min=1"`
}
