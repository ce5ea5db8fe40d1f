package domain

import "time"

// AuditEvent describes a security relevant action taken by a user.
type AuditEvent struct {
	UserID    int64
	Action    string
	Category  string
	Details   map[string]any
	IP        string
	UserAgent string
	At        time.Time
}

// Audit action categories
const (
	AuditCategoryAuth = "auth"
	AuditCategoryTask = "task"
)

// Audit actions
const (
	// Auth actions
	AuditActionRegister    = "register"
	AuditActionLogin       = "login"
	AuditActionLoginFailed = "login_failed"
	AuditActionLogout      = "logout"

	// Task actions
	AuditActionTaskCreate = "task_create"
	AuditActionTaskUpdate = "task_update"
	AuditActionTaskDelete = "task_delete"
	AuditActionTaskStatus = "task_status"
	AuditActionTaskDenied = "task_denied"
)
