package pgstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kunalgoyal9/gembot-backend/internal/models"
	"github.com/kunalgoyal9/gembot-backend/internal/store"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// UserStore is the PostgreSQL-backed credential store.
type UserStore struct {
	db *sql.DB
}

func New(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, name, phone, email, password, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.CreatedAt, user.Name, user.Phone, user.Email, user.Password, user.Role)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return store.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `
		SELECT id, created_at, name, phone, email, password, role
		FROM users WHERE email = $1
	`, email)
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return s.getUser(ctx, `
		SELECT id, created_at, name, phone, email, password, role
		FROM users WHERE id = $1
	`, parsedID)
}

func (s *UserStore) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.CreatedAt, &user.Name, &user.Phone,
		&user.Email, &user.Password, &user.Role,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
