package users

import "time"

// User is a stored account record. PasswordHash never leaves this layer in
// API responses; Profile is the outward shape.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Surname      string
	PhoneNumber  int64
	Image        string
	Role         string
	CreatedAt    time.Time
}

// Profile is the password-free view of a user returned to callers.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	PhoneNumber int64  `json:"phonenumber"`
	Image       string `json:"image"`
	Role        string `json:"role"`
}

// Profile returns the outward view of u.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Surname:     u.Surname,
		PhoneNumber: u.PhoneNumber,
		Image:       u.Image,
		Role:        u.Role,
	}
}
