// Package auth resolves staff identities and decides what each role may do.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthenticated    = apperr.New(apperr.Unauthenticated, "unauthorized")
	ErrInvalidCredentials = apperr.New(apperr.Unauthenticated, "invalid credentials")
	ErrForbidden          = apperr.New(apperr.Forbidden, "forbidden")
)

type Identity struct {
	UserID   string      `json:"id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
}

func IdentityOf(u models.User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type UserLoader interface {
	LoadUsers(ctx context.Context) ([]models.User, error)
}

type Authenticator struct {
	users UserLoader
}

func NewAuthenticator(users UserLoader) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate reports ErrInvalidCredentials for both unknown users and wrong passwords.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	users, err := a.users.LoadUsers(ctx)
	if err != nil {
		return nil, apperr.Storage("load users", err)
	}

	for _, u := range users {
		if u.Username != username {
			continue
		}
		if err := CheckPassword(u.PasswordHash, password); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		id := IdentityOf(u)
		return &id, nil
	}

	return nil, ErrInvalidCredentials
}
