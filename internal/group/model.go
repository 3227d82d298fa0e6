package group

import "time"

// Group is a circle of people who share expenses together.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Member is a person's membership in a group
type Member struct {
	ID       int64     `json:"id"`
	GroupID  int64     `json:"group_id"`
	PersonID int64     `json:"person_id"`
	AddedAt  time.Time `json:"added_at"`

	// Populated from JOIN
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
