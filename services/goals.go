package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/theramiway/fintelify/models"
	"github.com/theramiway/fintelify/store"
)

// GoalService validates goal writes. Progress toward a goal is derived on
// demand with GoalProgress and never persisted.
type GoalService struct {
	store store.GoalStore
}

func NewGoalService(s store.GoalStore) *GoalService {
	return &GoalService{store: s}
}

// GoalInput carries the caller-supplied fields of a goal. TargetAmount is a
// pointer so a missing target is distinguishable from an explicit zero.
type GoalInput struct {
	Title         string
	TargetAmount  *float64
	CurrentAmount float64
	Deadline      time.Time
	Status        models.GoalStatus
}

func (in GoalInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", "Goal title is required")
	}
	if in.TargetAmount == nil {
		return invalid("targetAmount", "Target amount is required")
	}
	if *in.TargetAmount < 0 {
		return invalid("targetAmount", "Target amount must be a positive number")
	}
	if in.CurrentAmount < 0 {
		return invalid("currentAmount", "Current amount must be a positive number")
	}
	if in.Deadline.IsZero() {
		return invalid("deadline", "Deadline is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		return invalid("status", "Status must be In Progress, Completed or Cancelled")
	}
	return nil
}

// Create validates the input and writes the goal. Status defaults to
// In Progress and current amount to zero.
func (s *GoalService) Create(ctx context.Context, in GoalInput) (models.Goal, error) {
	if err := in.validate(); err != nil {
		return models.Goal{}, err
	}
	status := in.Status
	if status == "" {
		status = models.StatusInProgress
	}
	g := models.Goal{
		Title:         strings.TrimSpace(in.Title),
		TargetAmount:  *in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.CreateGoal(ctx, &g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// List returns every goal ordered by deadline ascending, soonest first.
func (s *GoalService) List(ctx context.Context) ([]models.Goal, error) {
	return s.store.ListGoals(ctx)
}

// Update replaces every field of an existing goal after re-running the same
// validation as Create. The record's identifier and creation time survive the
// replace. Returns store.ErrNotFound when id is unknown.
func (s *GoalService) Update(ctx context.Context, id string, in GoalInput) (models.Goal, error) {
	if err := in.validate(); err != nil {
		return models.Goal{}, err
	}
	existing, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return models.Goal{}, err
	}
	status := in.Status
	if status == "" {
		status = models.StatusInProgress
	}
	g := models.Goal{
		ID:            existing.ID,
		Title:         strings.TrimSpace(in.Title),
		TargetAmount:  *in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
		Status:        status,
		CreatedAt:     existing.CreatedAt,
	}
	if err := s.store.ReplaceGoal(ctx, &g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// Delete removes one goal or returns store.ErrNotFound.
func (s *GoalService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteGoal(ctx, id)
}

// GoalProgress is the whole-percent progress toward a goal, clamped to
// [0, 100]. A zero target yields 0 rather than dividing by zero.
func GoalProgress(g models.Goal) int {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := math.Round(g.CurrentAmount / g.TargetAmount * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}
