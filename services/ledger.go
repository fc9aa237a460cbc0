package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/theramiway/fintelify/models"
	"github.com/theramiway/fintelify/store"
)

// DefaultTransactionLimit caps transaction listings when the caller does not
// ask for a specific limit.
const DefaultTransactionLimit = 20

// LedgerService validates and normalizes transaction writes against the
// record store passed in at construction.
type LedgerService struct {
	store store.TransactionStore
}

func NewLedgerService(s store.TransactionStore) *LedgerService {
	return &LedgerService{store: s}
}

// TransactionInput carries the caller-supplied fields of a new transaction.
// Amount is a pointer so an absent amount is distinguishable from an explicit
// zero, which is a valid amount.
type TransactionInput struct {
	Description string
	Amount      *float64
	Type        models.TransactionType
	Category    string
	Date        time.Time
}

// Create validates the input, derives the stored sign of the amount from the
// transaction type and writes the record. Date defaults to the creation time.
func (s *LedgerService) Create(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	if strings.TrimSpace(in.Description) == "" {
		return models.Transaction{}, invalid("description", "Transaction description is required")
	}
	if in.Amount == nil {
		return models.Transaction{}, invalid("amount", "Amount is required")
	}
	if !in.Type.Valid() {
		return models.Transaction{}, invalid("type", "Transaction type must be Income or Expense")
	}
	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	tx := models.Transaction{
		Description: strings.TrimSpace(in.Description),
		Amount:      NormalizeAmount(*in.Amount, in.Type),
		Type:        in.Type,
		Category:    strings.TrimSpace(in.Category),
		Date:        date,
		CreatedAt:   now,
	}
	if err := s.store.CreateTransaction(ctx, &tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// List returns the most recent transactions, newest date first. A limit of
// zero or less falls back to DefaultTransactionLimit.
func (s *LedgerService) List(ctx context.Context, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	return s.store.ListTransactions(ctx, limit)
}

// Delete removes one transaction. Returns store.ErrNotFound when id is
// unknown; the store is left unchanged in that case.
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTransaction(ctx, id)
}

// NormalizeAmount derives the stored sign from the transaction type: expenses
// are stored negative, income positive, whatever sign the caller sent. The
// magnitude is preserved. Zero stays zero (never -0).
func NormalizeAmount(amount float64, kind models.TransactionType) float64 {
	mag := math.Abs(amount)
	if mag == 0 {
		return 0
	}
	if kind == models.TypeExpense {
		return -mag
	}
	return mag
}

// Balance is the starting balance plus the sum of stored amounts. It is pure
// and order-independent; expenses subtract themselves via their stored sign.
func Balance(startingBalance float64, txs []models.Transaction) float64 {
	total := startingBalance
	for _, tx := range txs {
		total += tx.Amount
	}
	return total
}
