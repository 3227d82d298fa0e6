package person

import "time"

// Person is someone who can take part in a shared expense. The split
// engine only ever sees the id; name and avatar are for display.
type Person struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
