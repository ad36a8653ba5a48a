package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "sme-exchange-backend/internal/domain/loan"

	"gorm.io/gorm"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	l := &domain.Loan{ID: 1}

	// Uses provided func
	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Loan) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Create ctx mismatch")
			}
			if got != l {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, l); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, l); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Loan{ID: 7}

	// Uses provided func
	called := false
	m := &Repo{
		GetByIDFn: func(gotCtx context.Context, id uint64) (*domain.Loan, error) {
			called = true
			if gotCtx != ctx {
				t.Fatalf("GetByID ctx mismatch")
			}
			if id != 7 {
				t.Fatalf("GetByID id mismatch: got %d", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByID: unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("GetByID: wrong loan returned")
	}
	if !called {
		t.Fatalf("GetByIDFn not called")
	}

	// Default (nil func) → record not found
	m = &Repo{}
	if _, err := m.GetByID(ctx, 7); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByID default: want gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestRepo_ListDefaultsAreEmpty(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	out, err := m.ListByLender(ctx, 5, true)
	if err != nil || out != nil {
		t.Fatalf("ListByLender default: want nil, nil; got %v, %v", out, err)
	}
	if n, err := m.Count(ctx); err != nil || n != 0 {
		t.Fatalf("Count default: want 0, nil; got %d, %v", n, err)
	}
	if sum, err := m.SumOutstanding(ctx); err != nil || sum != 0 {
		t.Fatalf("SumOutstanding default: want 0, nil; got %v, %v", sum, err)
	}
}
