package entity

// Role names carried in access tokens.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

var Roles = []string{RoleAdmin, RoleDoctor, RolePatient}

func IsKnownRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
