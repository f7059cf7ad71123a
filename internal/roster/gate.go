// Package roster decides whether a new staff account may be registered.
// It is a pure decision over the existing roster; credential provisioning
// and the actual insert belong to the caller.
package roster

import (
	"errors"

	"go-coffee-warehouse/internal/model"
)

var (
	ErrRosterFull  = errors.New("total system user limit reached")
	ErrRoleFull    = errors.New("user limit reached for role")
	ErrInvalidRole = errors.New("unknown role")
)

// CanRegister returns nil when a new user with the requested role may be
// created. The roster-wide cap is checked before the per-role cap, and
// disabled accounts still count against both.
func CanRegister(existing []model.User, role model.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if len(existing) >= model.MaxRosterSize {
		return ErrRosterFull
	}

	count := 0
	for _, u := range existing {
		if u.Role == role {
			count++
		}
	}
	if count >= model.RoleCapacity[role] {
		return ErrRoleFull
	}
	return nil
}
