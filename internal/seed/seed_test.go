package seed

import (
	"context"
	"testing"

	"github.com/safar/go-lounge-pos/internal/auth"
	"github.com/safar/go-lounge-pos/internal/logger"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/safar/go-lounge-pos/internal/store"
	"github.com/shopspring/decimal"
)

func TestRunSeedsEmptyCollections(t *testing.T) {
	ctx := context.Background()
	gw := store.NewCollections(store.NewMemory())

	if err := Run(ctx, gw, Passwords{Admin: "admin123", Waiter: "waiter123"}, logger.Discard()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	a := auth.NewAuthenticator(gw)
	admin, err := a.Authenticate(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Authenticate admin: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("Expected admin role, got %s", admin.Role)
	}
	if _, err := a.Authenticate(ctx, "waiter1", "waiter123"); err != nil {
		t.Errorf("Authenticate waiter1: %v", err)
	}

	menu, err := gw.LoadMenu(ctx)
	if err != nil {
		t.Fatalf("LoadMenu: %v", err)
	}
	if len(menu) != 6 {
		t.Fatalf("Expected 6 menu items, got %d", len(menu))
	}
	if menu[0].NameEn != "Turkish Coffee" || !menu[0].Price.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Unexpected first item %+v", menu[0])
	}
	for _, item := range menu {
		if !item.Category.Valid() {
			t.Errorf("Item %s has invalid category %q", item.ID, item.Category)
		}
	}
}

func TestRunKeepsExistingCollections(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	gw := store.NewCollections(backend)

	existing := []models.MenuItem{{ID: "x", NameEn: "House Special", Price: decimal.NewFromInt(99), Category: models.CategoryOther}}
	if err := gw.SaveMenu(ctx, existing); err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}

	if err := Run(ctx, gw, Passwords{Admin: "a", Waiter: "w"}, logger.Discard()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := Run(ctx, gw, Passwords{Admin: "b", Waiter: "v"}, logger.Discard()); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	menu, _ := gw.LoadMenu(ctx)
	if len(menu) != 1 || menu[0].ID != "x" {
		t.Errorf("Expected menu to be untouched, got %+v", menu)
	}
	if got := backend.Puts(store.CollectionUsers); got != 1 {
		t.Errorf("Expected users to be written once, got %d", got)
	}

	if _, err := auth.NewAuthenticator(gw).Authenticate(ctx, "admin", "b"); err == nil {
		t.Error("Expected second run not to replace existing users")
	}
}
