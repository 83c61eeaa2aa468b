package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/models"
)

type staticUsers struct {
	users []models.User
	err   error
}

func (s staticUsers) LoadUsers(ctx context.Context) ([]models.User, error) {
	return s.users, s.err
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Hash password: %v", err)
	}
	return hash
}

func TestAuthenticate(t *testing.T) {
	users := staticUsers{users: []models.User{
		{ID: "1", Username: "admin", PasswordHash: mustHash(t, "admin123"), Role: models.RoleAdmin, Name: "Admin"},
		{ID: "2", Username: "waiter1", PasswordHash: mustHash(t, "waiter123"), Role: models.RoleWaiter, Name: "Waiter 1"},
	}}
	authn := NewAuthenticator(users)
	ctx := context.Background()

	id, err := authn.Authenticate(ctx, "waiter1", "waiter123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if id.UserID != "2" || id.Role != models.RoleWaiter || id.Name != "Waiter 1" {
		t.Errorf("Unexpected identity %+v", id)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "nope"},
		{name: "unknown user", username: "ghost", password: "admin123"},
		{name: "empty password", username: "admin", password: ""},
		{name: "empty username", username: " ", password: "admin123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authn.Authenticate(ctx, tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Expected invalid credentials, got %v", err)
			}
		})
	}
}

func TestAuthenticateStorageFailure(t *testing.T) {
	authn := NewAuthenticator(staticUsers{err: errors.New("read users.json: permission denied")})

	_, err := authn.Authenticate(context.Background(), "admin", "admin123")
	if apperr.KindOf(err) != apperr.StorageFailure {
		t.Errorf("Expected StorageFailure, got %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	admin := &Identity{UserID: "1", Role: models.RoleAdmin}
	waiter := &Identity{UserID: "2", Role: models.RoleWaiter}

	tests := []struct {
		name string
		id   *Identity
		op   Operation
		want apperr.Kind
		ok   bool
	}{
		{name: "anonymous list tables", id: nil, op: OpListTables, want: apperr.Unauthenticated},
		{name: "anonymous list menu", id: nil, op: OpListMenu, want: apperr.Unauthenticated},
		{name: "unknown role", id: &Identity{UserID: "9", Role: "chef"}, op: OpListTables, want: apperr.Unauthenticated},
		{name: "waiter add menu item", id: waiter, op: OpAddMenuItem, want: apperr.Forbidden},
		{name: "waiter record outcome", id: waiter, op: OpRecordOutcome, want: apperr.Forbidden},
		{name: "waiter settle order", id: waiter, op: OpSettleOrder, ok: true},
		{name: "waiter update table", id: waiter, op: OpUpdateTable, ok: true},
		{name: "waiter list transactions", id: waiter, op: OpListTransactions, ok: true},
		{name: "admin add menu item", id: admin, op: OpAddMenuItem, ok: true},
		{name: "admin record outcome", id: admin, op: OpRecordOutcome, ok: true},
		{name: "admin add order", id: admin, op: OpAddOrder, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.id, tt.op)
			if tt.ok {
				if err != nil {
					t.Errorf("Expected allow, got %v", err)
				}
				return
			}
			if apperr.KindOf(err) != tt.want {
				t.Errorf("Expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	token, expiresAt, err := issuer.Issue(Identity{UserID: "1", Username: "admin", Name: "Admin", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expiresAt.Equal(fixed.Add(time.Hour)) {
		t.Errorf("Expected expiry %s, got %s", fixed.Add(time.Hour), expiresAt)
	}

	id, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id.UserID != "1" || id.Role != models.RoleAdmin || id.Username != "admin" {
		t.Errorf("Unexpected identity %+v", id)
	}

	issuer.now = func() time.Time { return fixed.Add(2 * time.Hour) }
	if _, err := issuer.Parse(token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Expected expired token to be rejected, got %v", err)
	}
}

func TestTokenRejectsForeignSignature(t *testing.T) {
	ours := NewTokenIssuer("secret-a", time.Hour)
	theirs := NewTokenIssuer("secret-b", time.Hour)

	token, _, err := theirs.Issue(Identity{UserID: "1", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := ours.Parse(token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Expected foreign token to be rejected, got %v", err)
	}
	if _, err := ours.Parse("not-a-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Expected garbage to be rejected, got %v", err)
	}
}
