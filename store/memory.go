package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/theramiway/fintelify/models"
)

// MemoryStore is an in-memory record store, safe for concurrent use. It backs
// the service and handler tests so they run without a database.
type MemoryStore struct {
	mu           sync.Mutex
	transactions map[string]models.Transaction
	goals        map[string]models.Goal
	insights     map[string]models.Insight
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]models.Transaction),
		goals:        make(map[string]models.Goal),
		insights:     make(map[string]models.Insight),
	}
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	m.transactions[tx.ID] = *tx
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		items = append(items, tx)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return ErrNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MemoryStore) CreateGoal(ctx context.Context, g *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	m.goals[g.ID] = *g
	return nil
}

func (m *MemoryStore) GetGoal(ctx context.Context, id string) (models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return models.Goal{}, ErrNotFound
	}
	return g, nil
}

func (m *MemoryStore) ListGoals(ctx context.Context) ([]models.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.Goal, 0, len(m.goals))
	for _, g := range m.goals {
		items = append(items, g)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Deadline.Equal(items[j].Deadline) {
			return items[i].Deadline.Before(items[j].Deadline)
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (m *MemoryStore) ReplaceGoal(ctx context.Context, g *models.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[g.ID]; !ok {
		return ErrNotFound
	}
	m.goals[g.ID] = *g
	return nil
}

func (m *MemoryStore) DeleteGoal(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[id]; !ok {
		return ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *MemoryStore) CreateInsight(ctx context.Context, in *models.Insight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	m.insights[in.ID] = *in
	return nil
}

func (m *MemoryStore) ListInsights(ctx context.Context) ([]models.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.Insight, 0, len(m.insights))
	for _, in := range m.insights {
		items = append(items, in)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (m *MemoryStore) DeleteInsight(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.insights[id]; !ok {
		return ErrNotFound
	}
	delete(m.insights, id)
	return nil
}

var (
	_ TransactionStore = (*MemoryStore)(nil)
	_ GoalStore        = (*MemoryStore)(nil)
	_ InsightStore     = (*MemoryStore)(nil)
)
