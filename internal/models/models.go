package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Persisted documents and API payloads carry amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWaiter Role = "waiter"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleWaiter
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Role         Role   `json:"role"`
	Name         string `json:"name"`
}

type Category string

const (
	CategoryCoffee Category = "coffee"
	CategoryTea    Category = "tea"
	CategoryShisha Category = "shisha"
	CategoryFood   Category = "food"
	CategoryOther  Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryCoffee, CategoryTea, CategoryShisha, CategoryFood, CategoryOther:
		return true
	}
	return false
}

type MenuItem struct {
	ID       string          `json:"id"`
	NameEn   string          `json:"nameEn"`
	NameAr   string          `json:"nameAr"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
}

// OrderItem references its menu item by id; Price is the menu price when the order was taken.
type OrderItem struct {
	ID         string          `json:"id"`
	MenuItemID string          `json:"menuItemId"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Settled    bool            `json:"settled"`
	SettledAt  *time.Time      `json:"settledAt,omitempty"`
}

func (o OrderItem) Subtotal() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

type Table struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Orders    []OrderItem `json:"orders"`
	IsSettled bool        `json:"isSettled"`
	SettledAt *time.Time  `json:"settledAt,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// UnsettledTotal is the amount a table settlement would recognize.
func (t Table) UnsettledTotal() decimal.Decimal {
	total := decimal.Zero
	for _, order := range t.Orders {
		if !order.Settled {
			total = total.Add(order.Subtotal())
		}
	}
	return total
}

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionOutcome TransactionType = "outcome"
)

type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	TableID     string          `json:"tableId,omitempty"`
	UserID      string          `json:"userId"`
	CreatedAt   time.Time       `json:"createdAt"`
}
