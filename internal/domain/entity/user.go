package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleAuditor = "AUDITOR"
)

// ValidRole reporta si s es uno de los roles soportados.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleStaff, RoleAuditor:
		return true
	}
	return false
}

// User representa un usuario del sistema. La autenticación es externa (M365);
// aquí solo se registran los datos y el rol.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      string
	M365OID   string
	Active    bool
	CreatedAt time.Time
}
