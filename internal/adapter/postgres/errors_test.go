package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/math-s/yeargoals/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "get", "USER#me/STATS#2026"); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(fmt.Errorf("scan row: %w", pgx.ErrNoRows), "get", "USER#me/GOAL#2026#g1")

	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := "get USER#me/GOAL#2026#g1: not found"; got.Error() != want {
		t.Errorf("Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_ContextPassThrough(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.Canceled, context.DeadlineExceeded} {
		got := MapError(ctxErr, "query", "USER#me/ACTION#2026#")
		if !errors.Is(got, ctxErr) {
			t.Errorf("MapError(%v) lost context error: %v", ctxErr, got)
		}
		if errors.Is(got, domain.ErrNotFound) {
			t.Errorf("MapError(%v) mapped to not found", ctxErr)
		}
	}
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want error
	}{
		{"22P02", domain.ErrValidation},
		{"23502", domain.ErrValidation},
		{"23514", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()
			got := MapError(&pgconn.PgError{Code: tt.code, Message: "bad"}, "update", "k")
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMapError_Unknown(t *testing.T) {
	t.Parallel()

	orig := &pgconn.PgError{Code: "53300", Message: "too many connections"}
	got := MapError(orig, "put", "k")

	var pgErr *pgconn.PgError
	if !errors.As(got, &pgErr) || pgErr.Code != "53300" {
		t.Errorf("unknown pg error not preserved: %v", got)
	}
}
