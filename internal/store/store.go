package store

import (
	"context"
	"errors"

	"github.com/kunalgoyal9/gembot-backend/internal/models"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore is the credential store. Users are created on registration and read
// on login and session resolution; nothing updates or deletes them.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ChatStore is the append-only per-user chat log.
type ChatStore interface {
	SaveMessage(ctx context.Context, msg *models.ChatMessage) error
	// ListMessages returns every message for the user ordered by creation time
	// ascending. No pagination: the history endpoint returns the full log.
	ListMessages(ctx context.Context, userID string) ([]models.ChatMessage, error)
}
