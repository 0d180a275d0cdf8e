package worker

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidRole   = errors.New("invalid role")
	ErrEmptyPassword = errors.New("password hash cannot be empty")
)

// Worker is a console user: an admin or a sales worker. Authentication
// itself happens upstream; this entity only captures what the service
// needs to create and list accounts.
type Worker struct {
	id           uuid.UUID
	username     string
	email        string
	passwordHash string
	role         Role
	active       bool
}

func NewWorker(username, email, passwordHash string, role Role) (*Worker, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if passwordHash == "" {
		return nil, ErrEmptyPassword
	}

	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &Worker{
		id:           uuid.New(),
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		active:       true,
	}, nil
}

func (w *Worker) ID() uuid.UUID        { return w.id }
func (w *Worker) Username() string     { return w.username }
func (w *Worker) Email() string        { return w.email }
func (w *Worker) PasswordHash() string { return w.passwordHash }
func (w *Worker) Role() Role           { return w.role }
func (w *Worker) Active() bool         { return w.active }
