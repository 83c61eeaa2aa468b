package pos

import (
	"context"
	"log/slog"
	"strings"

	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/shopspring/decimal"
)

type NewMenuItem struct {
	NameEn   string
	NameAr   string
	Price    decimal.Decimal
	Category models.Category
}

func (in NewMenuItem) validate() error {
	if strings.TrimSpace(in.NameEn) == "" {
		return apperr.Invalid("nameEn is required")
	}
	if in.Price.IsNegative() {
		return apperr.Invalid("price must not be negative")
	}
	if !in.Category.Valid() {
		return apperr.Invalid("unknown category %q", in.Category)
	}
	return nil
}

func (s *Service) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.store.LoadMenu(ctx)
	if err != nil {
		return nil, apperr.Storage("load menu", err)
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return items, nil
}

func (s *Service) LookupMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	items, err := s.store.LoadMenu(ctx)
	if err != nil {
		return nil, apperr.Storage("load menu", err)
	}

	item, ok := findMenuItem(items, id)
	if !ok {
		return nil, ErrMenuItemNotFound
	}
	return &item, nil
}

func (s *Service) AddMenuItem(ctx context.Context, in NewMenuItem) (*models.MenuItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.menuMu.Lock()
	defer s.menuMu.Unlock()

	items, err := s.store.LoadMenu(ctx)
	if err != nil {
		return nil, apperr.Storage("load menu", err)
	}

	item := models.MenuItem{
		ID:       s.newID(),
		NameEn:   strings.TrimSpace(in.NameEn),
		NameAr:   strings.TrimSpace(in.NameAr),
		Price:    in.Price,
		Category: in.Category,
	}

	if err := s.store.SaveMenu(ctx, append(items, item)); err != nil {
		return nil, apperr.Storage("save menu", err)
	}

	s.log.Info("menu item added",
		slog.String("menu_item_id", item.ID),
		slog.String("category", string(item.Category)),
		slog.String("price", item.Price.String()),
	)

	return &item, nil
}

func findMenuItem(items []models.MenuItem, id string) (models.MenuItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}
