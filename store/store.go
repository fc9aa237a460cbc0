// Package store owns persistence for the transaction, goal and insight
// collections. Implementations assign opaque string identifiers on create and
// guarantee atomic single-record create/replace/delete.
package store

import (
	"context"
	"errors"

	"github.com/theramiway/fintelify/models"
)

// ErrNotFound is returned when an operation targets an identifier that does
// not exist. Deletes that miss leave the store unchanged.
var ErrNotFound = errors.New("record not found")

// TransactionStore persists ledger entries. ListTransactions returns the most
// recent entries first (date descending, deterministic tie-break) capped at
// limit.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// GoalStore persists savings goals. ListGoals returns goals ordered by
// deadline ascending. ReplaceGoal overwrites every field of an existing goal.
type GoalStore interface {
	CreateGoal(ctx context.Context, g *models.Goal) error
	GetGoal(ctx context.Context, id string) (models.Goal, error)
	ListGoals(ctx context.Context) ([]models.Goal, error)
	ReplaceGoal(ctx context.Context, g *models.Goal) error
	DeleteGoal(ctx context.Context, id string) error
}

// InsightStore persists spending insights, listed newest first.
type InsightStore interface {
	CreateInsight(ctx context.Context, in *models.Insight) error
	ListInsights(ctx context.Context) ([]models.Insight, error)
	DeleteInsight(ctx context.Context, id string) error
}
