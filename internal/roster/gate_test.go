package roster

import (
	"testing"

	"go-coffee-warehouse/internal/model"

	"github.com/stretchr/testify/assert"
)

func usersWithRoles(roles ...model.Role) []model.User {
	users := make([]model.User, len(roles))
	for i, r := range roles {
		users[i] = model.User{Role: r, Enabled: true}
	}
	return users
}

func TestCanRegister_EmptyRoster(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleImporter, model.RoleExporter} {
		assert.NoError(t, CanRegister(nil, role), "role %s", role)
	}
}

func TestCanRegister_RoleCapacity(t *testing.T) {
	tests := []struct {
		name     string
		existing []model.User
		role     model.Role
		wantErr  error
	}{
		{
			name:     "second admin is denied",
			existing: usersWithRoles(model.RoleAdmin),
			role:     model.RoleAdmin,
			wantErr:  ErrRoleFull,
		},
		{
			name:     "fourth importer is denied",
			existing: usersWithRoles(model.RoleImporter, model.RoleImporter, model.RoleImporter),
			role:     model.RoleImporter,
			wantErr:  ErrRoleFull,
		},
		{
			name:     "fourth exporter is denied",
			existing: usersWithRoles(model.RoleExporter, model.RoleExporter, model.RoleExporter),
			role:     model.RoleExporter,
			wantErr:  ErrRoleFull,
		},
		{
			name:     "full importer bench leaves exporter room",
			existing: usersWithRoles(model.RoleImporter, model.RoleImporter, model.RoleImporter),
			role:     model.RoleExporter,
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanRegister(tt.existing, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanRegister_RosterCap(t *testing.T) {
	full := usersWithRoles(
		model.RoleAdmin,
		model.RoleImporter, model.RoleImporter, model.RoleImporter,
		model.RoleExporter, model.RoleExporter, model.RoleExporter,
	)

	// The 8th registration is denied regardless of role
	for _, role := range []model.Role{model.RoleAdmin, model.RoleImporter, model.RoleExporter} {
		assert.ErrorIs(t, CanRegister(full, role), ErrRosterFull, "role %s", role)
	}
}

func TestCanRegister_RosterCapBeforeRoleCap(t *testing.T) {
	// Hypothetical oversubscribed roster: the roster-wide cap wins even when
	// the requested role itself would have room
	crowded := usersWithRoles(
		model.RoleImporter, model.RoleImporter, model.RoleImporter,
		model.RoleImporter, model.RoleImporter, model.RoleImporter,
		model.RoleImporter,
	)

	assert.ErrorIs(t, CanRegister(crowded, model.RoleAdmin), ErrRosterFull)
}

func TestCanRegister_DisabledUsersStillCount(t *testing.T) {
	existing := []model.User{{Role: model.RoleAdmin, Enabled: false}}

	assert.ErrorIs(t, CanRegister(existing, model.RoleAdmin), ErrRoleFull)
}

func TestCanRegister_UnknownRole(t *testing.T) {
	assert.ErrorIs(t, CanRegister(nil, model.Role("SUPERVISOR")), ErrInvalidRole)
}
