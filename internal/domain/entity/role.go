package entity

// Role identifies which actor table a subject lives in.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}
