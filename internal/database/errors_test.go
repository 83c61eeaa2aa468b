package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      ErrorClass
		retryable bool
	}{
		{name: "nil", err: nil, want: ErrorClassPermanent},
		{name: "no rows", err: sql.ErrNoRows, want: ErrorClassPermanent},
		{name: "pq serialization", err: &pq.Error{Code: "40001"}, want: ErrorClassSerialization, retryable: true},
		{name: "pq deadlock", err: &pq.Error{Code: "40P01"}, want: ErrorClassDeadlock, retryable: true},
		{name: "pq unique violation", err: &pq.Error{Code: "23505"}, want: ErrorClassPermanent},
		{name: "pgx lock not available", err: &pgconn.PgError{Code: "55P03"}, want: ErrorClassTransient, retryable: true},
		{name: "wrapped pgx serialization", err: fmt.Errorf("put tables: %w", &pgconn.PgError{Code: "40001"}), want: ErrorClassSerialization, retryable: true},
		{name: "plain", err: errors.New("boom"), want: ErrorClassPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %s, want %s", got, tt.want)
			}
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}
