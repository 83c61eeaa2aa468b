package pos

import (
	"context"
	"testing"
	"time"

	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/ledger"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/shopspring/decimal"
)

func TestRecordOutcome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.svc.RecordOutcome(ctx, admin, decimal.RequireFromString("120.50"), "  Charcoal  ")
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if tx.Type != models.TransactionOutcome || tx.Description != "Charcoal" || tx.TableID != "" {
		t.Errorf("Unexpected transaction %+v", tx)
	}
	if tx.UserID != admin.UserID {
		t.Errorf("Expected user %s, got %s", admin.UserID, tx.UserID)
	}
	if len(f.pub.published) != 1 {
		t.Errorf("Expected outcome to be published")
	}

	tests := []struct {
		name        string
		amount      decimal.Decimal
		description string
	}{
		{name: "zero amount", amount: decimal.Zero, description: "x"},
		{name: "negative amount", amount: decimal.NewFromInt(-5), description: "x"},
		{name: "blank description", amount: decimal.NewFromInt(5), description: " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.RecordOutcome(ctx, admin, tt.amount, tt.description); !apperr.Is(err, apperr.InvalidArgument) {
				t.Errorf("Expected InvalidArgument, got %v", err)
			}
		})
	}

	if txs := f.transactions(t); len(txs) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(txs))
	}
}

func TestQueryByPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 2026-10-14 is a Wednesday; the week starts Sunday the 11th.
	day := func(d, h int) time.Time { return time.Date(2026, 10, d, h, 0, 0, 0, time.UTC) }
	seed := []models.Transaction{
		{ID: "a", Type: models.TransactionIncome, Amount: decimal.NewFromInt(100), CreatedAt: day(14, 9)},
		{ID: "b", Type: models.TransactionOutcome, Amount: decimal.NewFromInt(30), CreatedAt: day(14, 8)},
		{ID: "c", Type: models.TransactionIncome, Amount: decimal.NewFromInt(40), CreatedAt: day(11, 0)},
		{ID: "d", Type: models.TransactionIncome, Amount: decimal.NewFromInt(7), CreatedAt: day(2, 12)},
		{ID: "e", Type: models.TransactionIncome, Amount: decimal.NewFromInt(1000), CreatedAt: time.Date(2026, 9, 30, 23, 0, 0, 0, time.UTC)},
	}
	if err := f.gw.SaveTransactions(ctx, seed); err != nil {
		t.Fatalf("SaveTransactions: %v", err)
	}

	tests := []struct {
		period  string
		ids     []string
		income  int64
		outcome int64
	}{
		{period: "", ids: []string{"b", "a"}, income: 100, outcome: 30},
		{period: "today", ids: []string{"b", "a"}, income: 100, outcome: 30},
		{period: "week", ids: []string{"c", "b", "a"}, income: 140, outcome: 30},
		{period: "month", ids: []string{"d", "c", "b", "a"}, income: 147, outcome: 30},
	}

	for _, tt := range tests {
		t.Run("period="+tt.period, func(t *testing.T) {
			summary, err := f.svc.QueryByPeriod(ctx, tt.period)
			if err != nil {
				t.Fatalf("QueryByPeriod: %v", err)
			}

			if len(summary.Transactions) != len(tt.ids) {
				t.Fatalf("Expected %d transactions, got %d", len(tt.ids), len(summary.Transactions))
			}
			for i, id := range tt.ids {
				if summary.Transactions[i].ID != id {
					t.Errorf("Position %d: expected %s, got %s", i, id, summary.Transactions[i].ID)
				}
			}

			if !summary.Income.Equal(decimal.NewFromInt(tt.income)) {
				t.Errorf("Expected income %d, got %s", tt.income, summary.Income)
			}
			if !summary.Outcome.Equal(decimal.NewFromInt(tt.outcome)) {
				t.Errorf("Expected outcome %d, got %s", tt.outcome, summary.Outcome)
			}
			if !summary.NetProfit.Equal(summary.Income.Sub(summary.Outcome)) {
				t.Errorf("Net profit %s does not match income minus outcome", summary.NetProfit)
			}
		})
	}

	if _, err := f.svc.QueryByPeriod(ctx, "year"); !apperr.Is(err, apperr.InvalidArgument) {
		t.Errorf("Expected InvalidArgument for unknown period, got %v", err)
	}

	summary, _ := f.svc.QueryByPeriod(ctx, "week")
	if summary.Period != ledger.PeriodWeek {
		t.Errorf("Expected week period, got %s", summary.Period)
	}
}
