package pos

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/auth"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/shopspring/decimal"
)

// TableUpdate mirrors the combined update request. Fields apply in order:
// label, reopen, settle.
type TableUpdate struct {
	Label  *string
	Reopen bool
	Settle bool
}

// tableMutation returns the collection to write back (nil for no write) and
// the ledger entries the change recognizes.
type tableMutation func(tables []models.Table, ix tableIndex) ([]models.Table, []models.Transaction, error)

func (s *Service) mutateTables(ctx context.Context, op string, fn tableMutation) error {
	recorded, err := s.mutateTablesLocked(ctx, op, fn)
	s.publish(ctx, recorded)
	return err
}

// mutateTablesLocked runs one read-modify-write cycle under tablesMu and
// returns the ledger entries it persisted.
func (s *Service) mutateTablesLocked(ctx context.Context, op string, fn tableMutation) ([]models.Transaction, error) {
	s.tablesMu.Lock()
	defer s.tablesMu.Unlock()

	tables, err := s.store.LoadTables(ctx)
	if err != nil {
		return nil, apperr.Storage("load tables", err)
	}

	next, emit, err := fn(tables, indexTables(tables))
	if err != nil {
		return nil, err
	}

	if next != nil {
		if err := s.store.SaveTables(ctx, next); err != nil {
			return nil, apperr.Storage("save tables", err)
		}
	}

	if len(emit) == 0 {
		return nil, nil
	}

	// The table write is not rolled back if the ledger write fails.
	if err := s.appendTransactions(ctx, emit...); err != nil {
		s.log.Error("ledger write failed after table write",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return nil, err
	}

	return emit, nil
}

func (s *Service) ListTables(ctx context.Context) ([]models.Table, error) {
	tables, err := s.store.LoadTables(ctx)
	if err != nil {
		return nil, apperr.Storage("load tables", err)
	}
	if tables == nil {
		tables = []models.Table{}
	}
	return tables, nil
}

func (s *Service) GetTable(ctx context.Context, id string) (*models.Table, error) {
	tables, err := s.store.LoadTables(ctx)
	if err != nil {
		return nil, apperr.Storage("load tables", err)
	}

	i, ok := indexTables(tables).table(id)
	if !ok {
		return nil, ErrTableNotFound
	}
	return &tables[i], nil
}

func (s *Service) CreateTable(ctx context.Context, label string) (*models.Table, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, apperr.Invalid("label is required")
	}

	now := s.timestamp()
	table := models.Table{
		ID:        s.newID(),
		Label:     label,
		Orders:    []models.OrderItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.mutateTables(ctx, "create_table", func(tables []models.Table, _ tableIndex) ([]models.Table, []models.Transaction, error) {
		return append(tables, table), nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("table opened", slog.String("table_id", table.ID), slog.String("label", table.Label))
	return &table, nil
}

// AddOrder appends an order priced at the menu item's current price. No
// income is recognized until the order is settled.
func (s *Service) AddOrder(ctx context.Context, tableID, menuItemID string, quantity int) (*models.OrderItem, *models.Table, error) {
	if quantity <= 0 {
		return nil, nil, apperr.Invalid("quantity must be greater than 0")
	}

	var (
		order  models.OrderItem
		result models.Table
	)

	err := s.mutateTables(ctx, "add_order", func(tables []models.Table, ix tableIndex) ([]models.Table, []models.Transaction, error) {
		i, ok := ix.table(tableID)
		if !ok {
			return nil, nil, ErrTableNotFound
		}
		if tables[i].IsSettled {
			return nil, nil, ErrTableSettled
		}

		menu, err := s.store.LoadMenu(ctx)
		if err != nil {
			return nil, nil, apperr.Storage("load menu", err)
		}
		item, ok := findMenuItem(menu, menuItemID)
		if !ok {
			return nil, nil, ErrMenuItemNotFound
		}

		order = models.OrderItem{
			ID:         s.newID(),
			MenuItemID: item.ID,
			Quantity:   quantity,
			Price:      item.Price,
		}

		t := &tables[i]
		t.Orders = append(t.Orders, order)
		t.UpdatedAt = s.timestamp()
		result = *t

		return tables, nil, nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &order, &result, nil
}

// SettleItem settles one order wherever it lives and recognizes its subtotal
// as income. Settling an order that is already settled succeeds without a
// second ledger entry.
func (s *Service) SettleItem(ctx context.Context, actor auth.Identity, orderID string) (*models.Table, error) {
	var result models.Table

	err := s.mutateTables(ctx, "settle_item", func(tables []models.Table, ix tableIndex) ([]models.Table, []models.Transaction, error) {
		ti, oi, ok := ix.order(tables, orderID)
		if !ok {
			return nil, nil, ErrOrderNotFound
		}

		t := &tables[ti]
		order := &t.Orders[oi]
		if order.Settled {
			result = *t
			return nil, nil, nil
		}

		now := s.timestamp()
		settleOrder(order, now)
		t.UpdatedAt = now
		result = *t

		tx := s.income(actor, *t, order.Subtotal(), fmt.Sprintf("Order settlement - Table %s", t.Label), now)
		return tables, []models.Transaction{tx}, nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// SettleTable closes the table and recognizes income for the orders that
// were still unsettled. Orders settled individually earlier are not counted
// again. Settling a settled table changes nothing.
func (s *Service) SettleTable(ctx context.Context, actor auth.Identity, tableID string) (*models.Table, error) {
	return s.UpdateTable(ctx, actor, tableID, TableUpdate{Settle: true})
}

// ReopenTable discards every order on the table and marks it open again.
// Income already recognized for the table stays in the ledger.
func (s *Service) ReopenTable(ctx context.Context, actor auth.Identity, tableID string) (*models.Table, error) {
	return s.UpdateTable(ctx, actor, tableID, TableUpdate{Reopen: true})
}

func (s *Service) UpdateLabel(ctx context.Context, actor auth.Identity, tableID, label string) (*models.Table, error) {
	return s.UpdateTable(ctx, actor, tableID, TableUpdate{Label: &label})
}

func (s *Service) UpdateTable(ctx context.Context, actor auth.Identity, tableID string, upd TableUpdate) (*models.Table, error) {
	var label string
	if upd.Label != nil {
		label = strings.TrimSpace(*upd.Label)
		if label == "" {
			return nil, apperr.Invalid("label must not be empty")
		}
	}

	var result models.Table

	err := s.mutateTables(ctx, "update_table", func(tables []models.Table, ix tableIndex) ([]models.Table, []models.Transaction, error) {
		i, ok := ix.table(tableID)
		if !ok {
			return nil, nil, ErrTableNotFound
		}

		t := &tables[i]
		now := s.timestamp()
		changed := false
		var emit []models.Transaction

		if upd.Label != nil && t.Label != label {
			t.Label = label
			changed = true
		}

		if upd.Reopen {
			reopenTable(t)
			changed = true
			s.log.Info("table reopened", slog.String("table_id", t.ID))
		}

		if upd.Settle && !t.IsSettled {
			amount := settleTable(t, now)
			changed = true
			if amount.IsPositive() {
				emit = append(emit, s.income(actor, *t, amount, fmt.Sprintf("Table %s settlement", t.Label), now))
			}
			s.log.Info("table settled",
				slog.String("table_id", t.ID),
				slog.String("amount", amount.String()),
			)
		}

		result = *t
		if !changed {
			return nil, nil, nil
		}

		t.UpdatedAt = now
		result = *t
		return tables, emit, nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func settleOrder(order *models.OrderItem, at time.Time) {
	settledAt := at
	order.Settled = true
	order.SettledAt = &settledAt
}

// settleTable marks the table and its unsettled orders settled at the same
// instant and returns the subtotal of the orders it settled.
func settleTable(t *models.Table, at time.Time) decimal.Decimal {
	amount := t.UnsettledTotal()
	for i := range t.Orders {
		if !t.Orders[i].Settled {
			settleOrder(&t.Orders[i], at)
		}
	}

	settledAt := at
	t.IsSettled = true
	t.SettledAt = &settledAt
	return amount
}

func reopenTable(t *models.Table) {
	t.IsSettled = false
	t.SettledAt = nil
	t.Orders = []models.OrderItem{}
}
