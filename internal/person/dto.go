package person

// CreatePersonRequest represents the request body for creating a person
type CreatePersonRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UpdatePersonRequest represents the request body for updating a person
type UpdatePersonRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// PersonResponse represents the response for a single person
type PersonResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts a Person model to a PersonResponse DTO
func (p *Person) ToResponse() *PersonResponse {
	return &PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
