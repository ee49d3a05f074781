package messages

import "time"

// Message is an inbound contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     int64     `json:"phone"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isread"`
	CreatedAt time.Time `json:"createdAt"`
}
