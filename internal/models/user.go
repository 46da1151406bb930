package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleUser is the default role assigned at registration.
const RoleUser = "user"

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"-"` // argon2id hash, never serialized
	Role     string `json:"role"`
}
