package model

// Role is the fixed set of warehouse roles
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleImporter Role = "IMPORTER"
	RoleExporter Role = "EXPORTER"
)

// RoleCapacity is the per-role registration cap
var RoleCapacity = map[Role]int{
	RoleAdmin:    1,
	RoleImporter: 3,
	RoleExporter: 3,
}

// MaxRosterSize is the system-wide user cap, checked before the role caps
const MaxRosterSize = 7

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	_, ok := RoleCapacity[r]
	return ok
}

// CanImport reports whether the role may record import transactions
func (r Role) CanImport() bool {
	return r == RoleAdmin || r == RoleImporter
}

// CanExport reports whether the role may record export transactions
func (r Role) CanExport() bool {
	return r == RoleAdmin || r == RoleExporter
}
