package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleWorker  UserRole = "worker"
	UserRoleCitizen UserRole = "citizen"
)

type Principal struct {
	UserID uuid.UUID
	Role   UserRole
	Name   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsWorker() bool {
	return p.Role == UserRoleWorker
}

// CanUpdateReport reports whether the principal may change the status or
// work images of the given report. Admins always can; workers only on
// reports currently assigned to them.
func (p Principal) CanUpdateReport(r *Report) bool {
	if p.IsAdmin() {
		return true
	}
	if p.IsWorker() && r.AssignedTo != nil {
		return *r.AssignedTo == p.UserID
	}
	return false
}
