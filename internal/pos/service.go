// Package pos implements the table and order lifecycle of the lounge: staff
// open tables, attach orders from the menu and settle them, and every
// settlement is recognized as income in the transaction ledger.
//
// All state lives in the four collections behind store.Gateway. Each
// operation loads the collections it needs, mutates one record in memory and
// writes the whole collection back. Within one Service the read-modify-write
// cycles on tables and on the ledger are serialized; separate processes
// sharing a backend still race with last-writer-wins.
package pos

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/ledger"
	"github.com/safar/go-lounge-pos/internal/logger"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/safar/go-lounge-pos/internal/store"
)

var (
	ErrTableNotFound    = apperr.New(apperr.NotFound, "table not found")
	ErrMenuItemNotFound = apperr.New(apperr.NotFound, "menu item not found")
	ErrOrderNotFound    = apperr.New(apperr.NotFound, "order not found")
	ErrTableSettled     = apperr.New(apperr.InvalidState, "table is settled")
)

// Publisher receives every transaction after it has been persisted.
type Publisher interface {
	PublishTransaction(ctx context.Context, tx models.Transaction) error
}

type Service struct {
	store     store.Gateway
	calendar  ledger.Calendar
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
	newID     func() string

	menuMu   sync.Mutex
	tablesMu sync.Mutex
	ledgerMu sync.Mutex
}

type Option func(*Service)

func WithCalendar(c ledger.Calendar) Option {
	return func(s *Service) { s.calendar = c }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func New(gw store.Gateway, opts ...Option) *Service {
	s := &Service{
		store:    gw,
		calendar: ledger.Calendar{Location: time.Local, WeekStart: time.Sunday},
		log:      logger.Discard(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}
