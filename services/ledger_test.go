package services

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/theramiway/fintelify/models"
	"github.com/theramiway/fintelify/store"
)

func amt(v float64) *float64 { return &v }

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		kind   models.TransactionType
		want   float64
	}{
		{"expense stored negative", 3500, models.TypeExpense, -3500},
		{"income stored positive", 15000, models.TypeIncome, 15000},
		{"negative expense keeps magnitude", -1200, models.TypeExpense, -1200},
		{"negative income flipped positive", -420, models.TypeIncome, 420},
		{"zero expense stays zero", 0, models.TypeExpense, 0},
		{"zero income stays zero", 0, models.TypeIncome, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAmount(tc.amount, tc.kind)
			if got != tc.want {
				t.Fatalf("NormalizeAmount(%v, %s) = %v, want %v", tc.amount, tc.kind, got, tc.want)
			}
		})
	}
	if math.Signbit(NormalizeAmount(0, models.TypeExpense)) {
		t.Fatal("zero expense must not be stored as -0")
	}
}

func TestBalancePermutationInvariant(t *testing.T) {
	txs := []models.Transaction{
		{Amount: -3500},
		{Amount: -1200},
		{Amount: -420},
		{Amount: 15000},
	}
	const want = 59880.0
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(txs), func(a, b int) { txs[a], txs[b] = txs[b], txs[a] })
		if got := Balance(50000, txs); got != want {
			t.Fatalf("Balance after shuffle %d = %v, want %v", i, got, want)
		}
	}
	if got := Balance(100, nil); got != 100 {
		t.Fatalf("Balance with no records = %v, want starting balance", got)
	}
}

func TestLedgerCreateNormalizesAndDefaults(t *testing.T) {
	svc := NewLedgerService(store.NewMemoryStore())
	ctx := context.Background()

	before := time.Now().UTC()
	tx, err := svc.Create(ctx, TransactionInput{
		Description: "Rent",
		Amount:      amt(3500),
		Type:        models.TypeExpense,
		Category:    "Housing",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tx.ID == "" {
		t.Fatal("expected store-assigned identifier")
	}
	if tx.Amount != -3500 {
		t.Fatalf("stored amount = %v, want -3500", tx.Amount)
	}
	if tx.Date.Before(before) {
		t.Fatalf("date should default to creation time, got %v", tx.Date)
	}
	if tx.CreatedAt.IsZero() {
		t.Fatal("createdAt must be set at creation")
	}

	explicit := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tx2, err := svc.Create(ctx, TransactionInput{
		Description: "Salary",
		Amount:      amt(-15000), // caller sign is ignored, only the kind matters
		Type:        models.TypeIncome,
		Date:        explicit,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tx2.Amount != 15000 {
		t.Fatalf("stored amount = %v, want 15000", tx2.Amount)
	}
	if !tx2.Date.Equal(explicit) {
		t.Fatalf("explicit date not preserved: %v", tx2.Date)
	}
}

func TestLedgerCreateValidation(t *testing.T) {
	cases := []struct {
		name  string
		in    TransactionInput
		field string
	}{
		{"empty description", TransactionInput{Amount: amt(10), Type: models.TypeIncome}, "description"},
		{"blank description", TransactionInput{Description: "   ", Amount: amt(10), Type: models.TypeIncome}, "description"},
		{"missing amount", TransactionInput{Description: "Rent", Type: models.TypeExpense}, "amount"},
		{"unknown type", TransactionInput{Description: "Rent", Amount: amt(10), Type: "Transfer"}, "type"},
		{"empty type", TransactionInput{Description: "Rent", Amount: amt(10)}, "type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemoryStore()
			svc := NewLedgerService(st)
			_, err := svc.Create(context.Background(), tc.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("violated field = %q, want %q", verr.Field, tc.field)
			}
			items, _ := svc.List(context.Background(), 0)
			if len(items) != 0 {
				t.Fatal("no record may be created on validation failure")
			}
		})
	}
}

func TestLedgerCreateAcceptsZeroAmount(t *testing.T) {
	svc := NewLedgerService(store.NewMemoryStore())
	tx, err := svc.Create(context.Background(), TransactionInput{
		Description: "Voided payment",
		Amount:      amt(0),
		Type:        models.TypeExpense,
	})
	if err != nil {
		t.Fatalf("zero amount must be valid, got %v", err)
	}
	if tx.Amount != 0 {
		t.Fatalf("stored amount = %v, want 0", tx.Amount)
	}
}

func TestLedgerListOrderingAndLimit(t *testing.T) {
	svc := NewLedgerService(store.NewMemoryStore())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	for _, d := range []int{2, 5, 1, 4, 3} {
		_, err := svc.Create(ctx, TransactionInput{
			Description: "tx",
			Amount:      amt(float64(d)),
			Type:        models.TypeIncome,
			Date:        day(d),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, err := svc.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []int{5, 4, 3} {
		if items[i].Date.Day() != want {
			t.Fatalf("items[%d].Date.Day() = %d, want %d (date descending)", i, items[i].Date.Day(), want)
		}
	}

	// repeated reads of unchanged data must not reorder
	again, _ := svc.List(ctx, 3)
	for i := range items {
		if items[i].ID != again[i].ID {
			t.Fatalf("ordering moved between reads at index %d", i)
		}
	}
}

func TestLedgerListDefaultLimit(t *testing.T) {
	svc := NewLedgerService(store.NewMemoryStore())
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, TransactionInput{
			Description: "tx",
			Amount:      amt(1),
			Type:        models.TypeIncome,
			Date:        time.Date(2024, 1, 1, i, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	items, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != DefaultTransactionLimit {
		t.Fatalf("len = %d, want default limit %d", len(items), DefaultTransactionLimit)
	}
}

func TestLedgerDelete(t *testing.T) {
	svc := NewLedgerService(store.NewMemoryStore())
	ctx := context.Background()

	tx, err := svc.Create(ctx, TransactionInput{Description: "Rent", Amount: amt(3500), Type: models.TypeExpense})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, "no-such-id"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	items, _ := svc.List(ctx, 0)
	if len(items) != 1 {
		t.Fatal("failed delete must leave the store unchanged")
	}

	if err := svc.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, _ = svc.List(ctx, 0)
	if len(items) != 0 {
		t.Fatal("deleted record still listed")
	}
	if err := svc.Delete(ctx, tx.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}
