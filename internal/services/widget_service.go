package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
)

var ErrWidgetLimitReached = errors.New("widget limit reached")

const maxWidgetsPerUser = 12

var allowedWidgetTypes = map[string]bool{
	"stats":         true,
	"matches":       true,
	"messages":      true,
	"campaigns":     true,
	"earnings":      true,
	"calendar":      true,
	"profile_views": true,
	"tasks":         true,
}

var allowedWidgetSizes = map[string]bool{
	"small":  true,
	"medium": true,
	"large":  true,
}

type dashboardWidgetStore interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.Widget, error)
	Create(ctx context.Context, input repository.CreateWidgetInput) (*models.Widget, error)
	Update(ctx context.Context, userID, widgetID int64, input repository.UpdateWidgetInput) (*models.Widget, error)
	Delete(ctx context.Context, userID, widgetID int64) error
	UpdatePositions(ctx context.Context, userID int64, orderedIDs []int64) error
	CountByUserID(ctx context.Context, userID int64) (int, error)
}

type WidgetService struct {
	widgetRepo dashboardWidgetStore
}

func NewWidgetService(widgetRepo dashboardWidgetStore) *WidgetService {
	return &WidgetService{widgetRepo: widgetRepo}
}

func (s *WidgetService) ListWidgets(ctx context.Context, userID int64) ([]models.Widget, error) {
	return s.widgetRepo.ListByUserID(ctx, userID)
}

type CreateWidgetRequest struct {
	Type  string
	Title string
	Size  string
}

// CreateWidget appends a widget to the end of the user's dashboard. The
// position is assigned by the store.
func (s *WidgetService) CreateWidget(ctx context.Context, userID int64, req CreateWidgetRequest) (*models.Widget, error) {
	widgetType := normalize(req.Type)
	if !allowedWidgetTypes[widgetType] {
		return nil, ErrInvalidInput
	}

	size := normalize(req.Size)
	if size == "" {
		size = "medium"
	}
	if !allowedWidgetSizes[size] {
		return nil, ErrInvalidInput
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	count, err := s.widgetRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= maxWidgetsPerUser {
		return nil, ErrWidgetLimitReached
	}

	return s.widgetRepo.Create(ctx, repository.CreateWidgetInput{
		UserID: userID,
		Type:   widgetType,
		Title:  title,
		Size:   size,
	})
}

type UpdateWidgetRequest struct {
	Title *string
	Size  *string
}

func (s *WidgetService) UpdateWidget(ctx context.Context, userID, widgetID int64, req UpdateWidgetRequest) (*models.Widget, error) {
	if widgetID <= 0 {
		return nil, ErrInvalidInput
	}

	var title *string
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		title = &trimmed
	}

	var size *string
	if req.Size != nil {
		normalized := normalize(*req.Size)
		if !allowedWidgetSizes[normalized] {
			return nil, ErrInvalidInput
		}
		size = &normalized
	}

	if title == nil && size == nil {
		return nil, ErrInvalidInput
	}

	return s.widgetRepo.Update(ctx, userID, widgetID, repository.UpdateWidgetInput{
		Title: title,
		Size:  size,
	})
}

func (s *WidgetService) DeleteWidget(ctx context.Context, userID, widgetID int64) error {
	if widgetID <= 0 {
		return ErrInvalidInput
	}
	return s.widgetRepo.Delete(ctx, userID, widgetID)
}

// ReorderWidgets replaces the dashboard ordering. The supplied ids must be
// exactly the user's current widgets, each exactly once.
func (s *WidgetService) ReorderWidgets(ctx context.Context, userID int64, orderedIDs []int64) error {
	if len(orderedIDs) == 0 {
		return ErrInvalidInput
	}

	current, err := s.widgetRepo.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(current) != len(orderedIDs) {
		return ErrInvalidInput
	}

	owned := make(map[int64]bool, len(current))
	for _, widget := range current {
		owned[widget.ID] = true
	}

	seen := make(map[int64]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !owned[id] || seen[id] {
			return ErrInvalidInput
		}
		seen[id] = true
	}

	return s.widgetRepo.UpdatePositions(ctx, userID, orderedIDs)
}
