package model

// Role is the closed set of subject roles. It is assigned at signup
// and never changes afterwards.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDriver
}

// Profile binds a display name and role 1:1 to an identity.
type Profile struct {
	ID   string
	Name string
	Role Role
}
