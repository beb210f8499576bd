package models

// Role defines the user role type
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether s is a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}
