package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/isdelr/shopsmart-be/internal/auth"
	"github.com/isdelr/shopsmart-be/internal/models"
)

// MinPasswordLength is the minimum password length in characters.
const MinPasswordLength = 6

// TokenSigner issues session tokens for a user ID.
type TokenSigner interface {
	Issue(userID string) (string, error)
}

// AuthResult is returned by a successful signup or login.
type AuthResult struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// AuthServiceProvider defines the interface for auth services.
type AuthServiceProvider interface {
	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, id string) (models.PublicUser, error)
}

// AuthService orchestrates signup and login. It holds no mutable state and is
// safe for concurrent use.
type AuthService struct {
	users  UserDirectory
	hasher auth.PasswordHasher
	tokens TokenSigner
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserDirectory, hasher auth.PasswordHasher, tokens TokenSigner) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Signup registers a new user and issues their first session token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, validationError(msgFieldsRequired)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, validationError(msgPasswordTooShort)
	}

	// Fast path only; the directory's unique constraint is what actually guarantees one user per email.
	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, &Error{Kind: KindConflict, Message: msgEmailTaken}
	case !errors.Is(err, ErrUserNotFound):
		return nil, infrastructureError(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, &Error{Kind: KindValidation, Message: msgPasswordTooLong, Err: err}
		}
		return nil, infrastructureError(err)
	}

	// The token is signed before the insert so a signing failure leaves no user behind.
	id := uuid.New().String()
	token, err := s.tokens.Issue(id)
	if err != nil {
		return nil, infrastructureError(err)
	}

	user, err := s.users.Create(ctx, NewUser{ID: id, Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, &Error{Kind: KindConflict, Message: msgEmailTaken, Err: err}
		}
		return nil, infrastructureError(err)
	}

	return &AuthResult{
		Message: "User created successfully.",
		Token:   token,
		User:    user.Public(),
	}, nil
}

// Login verifies credentials and issues a new session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, validationError(msgLoginFieldsRequired)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, &Error{Kind: KindAuthentication, Message: msgInvalidCredentials}
		}
		return nil, infrastructureError(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, &Error{Kind: KindAuthentication, Message: msgInvalidCredentials}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, infrastructureError(err)
	}

	return &AuthResult{
		Message: "Login successful.",
		Token:   token,
		User:    user.Public(),
	}, nil
}

// CurrentUser resolves the subject of a verified token to its public profile.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (models.PublicUser, error) {
	if id == "" {
		return models.PublicUser{}, &Error{Kind: KindAuthentication, Message: msgInvalidSession}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.PublicUser{}, &Error{Kind: KindAuthentication, Message: msgInvalidSession, Err: err}
		}
		return models.PublicUser{}, infrastructureError(err)
	}
	return user.Public(), nil
}
