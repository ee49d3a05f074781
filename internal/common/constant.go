package common

// Roles a user account can hold. Exactly one role per user.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)
