package auth

import "github.com/ramhdi/vimana2/internal/model"

// Policy decides which roles may perform privileged operations. Account
// creation is the only gated operation in this system.
type Policy interface {
	CanCreateUsers(role model.Role) bool
}

// RolePolicy grants account creation to admins only.
type RolePolicy struct{}

func (RolePolicy) CanCreateUsers(role model.Role) bool {
	return role == model.RoleAdmin
}
