package services

import (
	"context"
	"strings"
	"time"

	"github.com/theramiway/fintelify/models"
	"github.com/theramiway/fintelify/store"
)

// InsightService persists journal entries. No derived computation lives here;
// the service exists for validated writes and retrieval ordering.
type InsightService struct {
	store store.InsightStore
}

func NewInsightService(s store.InsightStore) *InsightService {
	return &InsightService{store: s}
}

// InsightInput carries the caller-supplied fields of a new insight.
type InsightInput struct {
	Text            string
	Title           string
	RelatedCategory string
	Date            time.Time
}

// Create validates the input and writes the insight. Date defaults to the
// creation time.
func (s *InsightService) Create(ctx context.Context, in InsightInput) (models.Insight, error) {
	if strings.TrimSpace(in.Text) == "" {
		return models.Insight{}, invalid("text", "Insight text is required")
	}
	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	insight := models.Insight{
		Text:            in.Text,
		Title:           strings.TrimSpace(in.Title),
		RelatedCategory: strings.TrimSpace(in.RelatedCategory),
		Date:            date,
		CreatedAt:       now,
	}
	if err := s.store.CreateInsight(ctx, &insight); err != nil {
		return models.Insight{}, err
	}
	return insight, nil
}

// List returns every insight, newest date first.
func (s *InsightService) List(ctx context.Context) ([]models.Insight, error) {
	return s.store.ListInsights(ctx)
}

// Delete removes one insight or returns store.ErrNotFound.
func (s *InsightService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteInsight(ctx, id)
}
