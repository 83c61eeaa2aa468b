package pos

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/auth"
	"github.com/safar/go-lounge-pos/internal/ledger"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/shopspring/decimal"
)

func (s *Service) income(actor auth.Identity, t models.Table, amount decimal.Decimal, description string, at time.Time) models.Transaction {
	return models.Transaction{
		ID:          s.newID(),
		Type:        models.TransactionIncome,
		Amount:      amount,
		Description: description,
		TableID:     t.ID,
		UserID:      actor.UserID,
		CreatedAt:   at,
	}
}

// appendTransactions adds entries to the ledger. Callers publish them with
// publish once every lock is released.
func (s *Service) appendTransactions(ctx context.Context, txs ...models.Transaction) error {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	existing, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return apperr.Storage("load transactions", err)
	}

	if err := s.store.SaveTransactions(ctx, append(existing, txs...)); err != nil {
		return apperr.Storage("save transactions", err)
	}

	for _, tx := range txs {
		s.log.Info("transaction recorded",
			slog.String("transaction_id", tx.ID),
			slog.String("type", string(tx.Type)),
			slog.String("amount", tx.Amount.String()),
			slog.String("table_id", tx.TableID),
			slog.String("user_id", tx.UserID),
		)
	}

	return nil
}

// publish hands persisted entries to the publisher. Failures are logged only.
// It must not be called with tablesMu or ledgerMu held.
func (s *Service) publish(ctx context.Context, txs []models.Transaction) {
	if s.publisher == nil {
		return
	}

	for _, tx := range txs {
		if err := s.publisher.PublishTransaction(ctx, tx); err != nil {
			s.log.Warn("failed to publish transaction",
				slog.String("transaction_id", tx.ID),
				slog.Any("error", err),
			)
		}
	}
}

// RecordOutcome books an expense against the ledger.
func (s *Service) RecordOutcome(ctx context.Context, actor auth.Identity, amount decimal.Decimal, description string) (*models.Transaction, error) {
	description = strings.TrimSpace(description)
	if !amount.IsPositive() {
		return nil, apperr.Invalid("amount must be greater than 0")
	}
	if description == "" {
		return nil, apperr.Invalid("description is required")
	}

	tx := models.Transaction{
		ID:          s.newID(),
		Type:        models.TransactionOutcome,
		Amount:      amount,
		Description: description,
		UserID:      actor.UserID,
		CreatedAt:   s.timestamp(),
	}

	if err := s.appendTransactions(ctx, tx); err != nil {
		return nil, err
	}
	s.publish(ctx, []models.Transaction{tx})

	return &tx, nil
}

// QueryByPeriod returns the ledger entries of the current day, week or month
// with their totals. An empty period means today.
func (s *Service) QueryByPeriod(ctx context.Context, period string) (*ledger.Summary, error) {
	p, err := ledger.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	txs, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, apperr.Storage("load transactions", err)
	}

	summary := ledger.Summarize(p, s.calendar.Window(p, s.now()), txs)
	return &summary, nil
}
