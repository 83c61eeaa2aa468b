package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/safar/go-lounge-pos/internal/models"
)

const (
	CollectionUsers        = "users"
	CollectionMenu         = "menu"
	CollectionTables       = "tables"
	CollectionTransactions = "transactions"
)

// Backend persists whole collections as JSON documents. Get returns nil, nil
// for a collection that was never written.
type Backend interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, doc []byte) error
	Close() error
}

// Gateway is the load/replace contract the point-of-sale core works against.
type Gateway interface {
	LoadUsers(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error
	LoadMenu(ctx context.Context) ([]models.MenuItem, error)
	SaveMenu(ctx context.Context, items []models.MenuItem) error
	LoadTables(ctx context.Context) ([]models.Table, error)
	SaveTables(ctx context.Context, tables []models.Table) error
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []models.Transaction) error
}

type Collections struct {
	backend Backend
}

func NewCollections(backend Backend) *Collections {
	return &Collections{backend: backend}
}

func (c *Collections) Close() error {
	return c.backend.Close()
}

func (c *Collections) LoadUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	return users, c.load(ctx, CollectionUsers, &users)
}

func (c *Collections) SaveUsers(ctx context.Context, users []models.User) error {
	return c.save(ctx, CollectionUsers, users)
}

func (c *Collections) LoadMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	return items, c.load(ctx, CollectionMenu, &items)
}

func (c *Collections) SaveMenu(ctx context.Context, items []models.MenuItem) error {
	return c.save(ctx, CollectionMenu, items)
}

func (c *Collections) LoadTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	return tables, c.load(ctx, CollectionTables, &tables)
}

func (c *Collections) SaveTables(ctx context.Context, tables []models.Table) error {
	return c.save(ctx, CollectionTables, tables)
}

func (c *Collections) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	return transactions, c.load(ctx, CollectionTransactions, &transactions)
}

func (c *Collections) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	return c.save(ctx, CollectionTransactions, transactions)
}

func (c *Collections) load(ctx context.Context, name string, dst any) error {
	doc, err := c.backend.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(doc) == 0 {
		return nil
	}

	if err := json.Unmarshal(doc, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (c *Collections) save(ctx context.Context, name string, v any) error {
	doc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if err := c.backend.Put(ctx, name, doc); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
