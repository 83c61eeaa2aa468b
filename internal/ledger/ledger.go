// Package ledger computes reporting windows and income/outcome totals over
// the transaction collection.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod treats an empty value as today.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodToday, nil
	case PeriodToday, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", apperr.Invalid("unknown period %q", s)
	}
}

// Window is closed on both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Calendar fixes the time zone and first weekday used for day, week and month boundaries.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Calendar) Window(p Period, now time.Time) Window {
	now = now.In(c.location())
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start, next time.Time
	switch p {
	case PeriodWeek:
		offset := (int(day.Weekday()) - int(c.WeekStart) + 7) % 7
		start = day.AddDate(0, 0, -offset)
		next = start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		next = start.AddDate(0, 1, 0)
	default:
		start = day
		next = day.AddDate(0, 0, 1)
	}

	return Window{Start: start, End: next.Add(-time.Nanosecond)}
}

type Summary struct {
	Period       Period               `json:"period"`
	From         time.Time            `json:"from"`
	To           time.Time            `json:"to"`
	Transactions []models.Transaction `json:"transactions"`
	Income       decimal.Decimal      `json:"income"`
	Outcome      decimal.Decimal      `json:"outcome"`
	NetProfit    decimal.Decimal      `json:"netProfit"`
}

// Summarize filters transactions to the window and totals them by type.
func Summarize(p Period, w Window, transactions []models.Transaction) Summary {
	s := Summary{
		Period:       p,
		From:         w.Start,
		To:           w.End,
		Transactions: []models.Transaction{},
		Income:       decimal.Zero,
		Outcome:      decimal.Zero,
	}

	for _, tx := range transactions {
		if !w.Contains(tx.CreatedAt) {
			continue
		}
		s.Transactions = append(s.Transactions, tx)

		switch tx.Type {
		case models.TransactionIncome:
			s.Income = s.Income.Add(tx.Amount)
		case models.TransactionOutcome:
			s.Outcome = s.Outcome.Add(tx.Amount)
		}
	}

	sort.SliceStable(s.Transactions, func(i, j int) bool {
		return s.Transactions[i].CreatedAt.Before(s.Transactions[j].CreatedAt)
	})

	s.NetProfit = s.Income.Sub(s.Outcome)
	return s
}
