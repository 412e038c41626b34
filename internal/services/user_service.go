package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/shopsmart-be/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// NewUser carries the fields needed to create a user record. An empty ID is
// replaced with a fresh UUID.
type NewUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// UserDirectory is the persistent store of users, unique by email.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, u NewUser) (*models.User, error)
}

// UserService is the SQLite-backed UserDirectory.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetByID retrieves a single user by their ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

// FindByEmail retrieves a single user by their exact email, including the password hash.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

// Create inserts a new user. A duplicate email yields ErrEmailTaken even when
// two creates race past an earlier lookup.
func (s *UserService) Create(ctx context.Context, u NewUser) (*models.User, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	user := &models.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, created_at) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
