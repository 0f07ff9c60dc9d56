package models

import "time"

// UserRole represents the roles an EnrollPlus account can hold.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleStaff    UserRole = "staff"
	RoleCustomer UserRole = "customer"
)

// UserRoles lists every role in display order.
var UserRoles = []UserRole{RoleAdmin, RoleManager, RoleStaff, RoleCustomer}

// UserStatus is the account state shown in the users table.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// UserStatuses lists every status in display order.
var UserStatuses = []UserStatus{UserStatusActive, UserStatusInactive, UserStatusSuspended}

// User represents an admin panel account row.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	Avatar    string     `json:"avatar,omitempty"`
}

// Toggled returns the status a toggle moves to: active becomes inactive and
// anything else becomes active.
func (s UserStatus) Toggled() UserStatus {
	if s == UserStatusActive {
		return UserStatusInactive
	}
	return UserStatusActive
}
