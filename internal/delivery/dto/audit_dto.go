package dto

import "time"

// AuditLogResponse describes one audit trail entry
type AuditLogResponse struct {
	ID         int64                  `json:"id"`
	EmployeeID *string                `json:"employee_id"`
	Action     string                 `json:"action"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
