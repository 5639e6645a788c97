package auth

import "time"

// User is the local record of an externally authenticated identity. ID is the
// token subject.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"dataCriacao"`
	UpdatedAt time.Time `json:"dataAtualizacao"`
}
