package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/theramiway/fintelify/models"
)

// GormStore is the Postgres-backed record store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *GormStore) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	items := make([]models.Transaction, 0, limit)
	// id is the final tie-break so repeated reads of unchanged data never reorder
	err := s.db.WithContext(ctx).
		Order("date DESC, created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return items, nil
}

func (s *GormStore) DeleteTransaction(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateGoal(ctx context.Context, g *models.Goal) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (s *GormStore) GetGoal(ctx context.Context, id string) (models.Goal, error) {
	var g models.Goal
	if err := s.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Goal{}, ErrNotFound
		}
		return models.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

func (s *GormStore) ListGoals(ctx context.Context) ([]models.Goal, error) {
	items := make([]models.Goal, 0)
	err := s.db.WithContext(ctx).
		Order("deadline ASC, created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return items, nil
}

func (s *GormStore) ReplaceGoal(ctx context.Context, g *models.Goal) error {
	// Select("*") forces a full-column update so zeroed fields are written
	// too; Save is avoided because it silently inserts when the id is unknown
	res := s.db.WithContext(ctx).Model(&models.Goal{}).Where("id = ?", g.ID).Select("*").Updates(g)
	if res.Error != nil {
		return fmt.Errorf("replace goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteGoal(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Goal{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateInsight(ctx context.Context, in *models.Insight) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(in).Error; err != nil {
		return fmt.Errorf("create insight: %w", err)
	}
	return nil
}

func (s *GormStore) ListInsights(ctx context.Context) ([]models.Insight, error) {
	items := make([]models.Insight, 0)
	err := s.db.WithContext(ctx).
		Order("date DESC, created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	return items, nil
}

func (s *GormStore) DeleteInsight(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Insight{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete insight: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Compile-time checks: GormStore implements every record store interface
var (
	_ TransactionStore = (*GormStore)(nil)
	_ GoalStore        = (*GormStore)(nil)
	_ InsightStore     = (*GormStore)(nil)
)
