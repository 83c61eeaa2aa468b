// Package seed provisions the default staff accounts and menu into empty
// collections.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/safar/go-lounge-pos/internal/auth"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/safar/go-lounge-pos/internal/store"
	"github.com/shopspring/decimal"
)

type Passwords struct {
	Admin  string
	Waiter string
}

func DefaultMenu() []models.MenuItem {
	item := func(id, en, ar string, price int64, c models.Category) models.MenuItem {
		return models.MenuItem{ID: id, NameEn: en, NameAr: ar, Price: decimal.NewFromInt(price), Category: c}
	}
	return []models.MenuItem{
		item("1", "Turkish Coffee", "قهوة تركية", 15, models.CategoryCoffee),
		item("2", "Espresso", "إسبريسو", 12, models.CategoryCoffee),
		item("3", "Black Tea", "شاي أسود", 8, models.CategoryTea),
		item("4", "Green Tea", "شاي أخضر", 8, models.CategoryTea),
		item("5", "Shisha (Single)", "شيشة (فردي)", 50, models.CategoryShisha),
		item("6", "Shisha (Double)", "شيشة (مزدوج)", 80, models.CategoryShisha),
	}
}

func defaultUsers(pw Passwords) ([]models.User, error) {
	adminHash, err := auth.HashPassword(pw.Admin)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	waiterHash, err := auth.HashPassword(pw.Waiter)
	if err != nil {
		return nil, fmt.Errorf("hash waiter password: %w", err)
	}

	return []models.User{
		{ID: "1", Username: "admin", PasswordHash: adminHash, Role: models.RoleAdmin, Name: "Admin"},
		{ID: "2", Username: "waiter1", PasswordHash: waiterHash, Role: models.RoleWaiter, Name: "Waiter 1"},
	}, nil
}

// Run seeds users and menu when their collections are empty. Collections that
// already hold records are left alone.
func Run(ctx context.Context, gw store.Gateway, pw Passwords, log *slog.Logger) error {
	users, err := gw.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		users, err = defaultUsers(pw)
		if err != nil {
			return err
		}
		if err := gw.SaveUsers(ctx, users); err != nil {
			return fmt.Errorf("save users: %w", err)
		}
		log.Info("seeded default users", slog.Int("count", len(users)))
	}

	menu, err := gw.LoadMenu(ctx)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	if len(menu) == 0 {
		menu = DefaultMenu()
		if err := gw.SaveMenu(ctx, menu); err != nil {
			return fmt.Errorf("save menu: %w", err)
		}
		log.Info("seeded default menu", slog.Int("count", len(menu)))
	}

	return nil
}
