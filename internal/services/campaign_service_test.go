package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubCampaignStore struct {
	campaign  *models.Campaign
	created   *repository.CreateCampaignInput
	updateErr error
}

func (s *stubCampaignStore) Create(_ context.Context, input repository.CreateCampaignInput) (*models.Campaign, error) {
	s.created = &input
	return &models.Campaign{
		ID:          1,
		BusinessID:  input.BusinessID,
		Title:       input.Title,
		Description: input.Description,
		Status:      "draft",
		Generated:   input.Generated,
	}, nil
}

func (s *stubCampaignStore) GetByID(_ context.Context, _ int64) (*models.Campaign, error) {
	if s.campaign == nil {
		return nil, pgx.ErrNoRows
	}
	return s.campaign, nil
}

func (s *stubCampaignStore) ListByBusinessID(_ context.Context, businessID int64) ([]models.Campaign, error) {
	if s.campaign == nil || s.campaign.BusinessID != businessID {
		return []models.Campaign{}, nil
	}
	return []models.Campaign{*s.campaign}, nil
}

func (s *stubCampaignStore) UpdateStatusIfCurrent(_ context.Context, campaignID int64, _, nextStatus string) (*models.Campaign, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	updated := *s.campaign
	updated.ID = campaignID
	updated.Status = nextStatus
	return &updated, nil
}

func TestCreateCampaignRejectsBlankTitle(t *testing.T) {
	service := NewCampaignService(&stubCampaignStore{})

	_, err := service.CreateCampaign(context.Background(), 5, CreateCampaignInput{Title: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateStarterBuildsBundlesFromObjectives(t *testing.T) {
	store := &stubCampaignStore{}
	service := NewCampaignService(store)

	company := "Acme Sports"
	objectives := []string{"brand_awareness", "product_launch", "something_else"}
	budget := "1k-5k"

	campaign, err := service.GenerateStarter(context.Background(), &models.BusinessProfile{
		UserID:      9,
		CompanyName: &company,
		Objectives:  &objectives,
		BudgetRange: &budget,
	})
	if err != nil {
		t.Fatalf("GenerateStarter: %v", err)
	}

	if campaign.Title != "Acme Sports athlete launch" {
		t.Fatalf("unexpected title %q", campaign.Title)
	}
	if !campaign.Generated || campaign.Status != "draft" {
		t.Fatalf("expected generated draft campaign, got %+v", campaign)
	}
	if len(store.created.Bundles) != 2 {
		t.Fatalf("expected bundles for the two known objectives, got %v", store.created.Bundles)
	}
	if store.created.Bundles[0] != "3 feed posts + 1 story takeover" {
		t.Fatalf("unexpected first bundle %q", store.created.Bundles[0])
	}
}

func TestGenerateStarterFallsBackWithoutObjectives(t *testing.T) {
	store := &stubCampaignStore{}
	service := NewCampaignService(store)

	campaign, err := service.GenerateStarter(context.Background(), &models.BusinessProfile{UserID: 9})
	if err != nil {
		t.Fatalf("GenerateStarter: %v", err)
	}

	if campaign.Title != "Your brand athlete launch" {
		t.Fatalf("unexpected title %q", campaign.Title)
	}
	if len(store.created.Bundles) != 1 || store.created.Bundles[0] != "2 feed posts + 1 story" {
		t.Fatalf("expected fallback bundle, got %v", store.created.Bundles)
	}
}

func TestGetCampaignEnforcesOwnership(t *testing.T) {
	store := &stubCampaignStore{campaign: &models.Campaign{ID: 3, BusinessID: 9, Status: "draft"}}
	service := NewCampaignService(store)

	if _, err := service.GetCampaign(context.Background(), 8, "business", 3); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for wrong owner, got %v", err)
	}
	if _, err := service.GetCampaign(context.Background(), 9, "athlete", 3); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for athlete role, got %v", err)
	}

	campaign, err := service.GetCampaign(context.Background(), 9, "business", 3)
	if err != nil {
		t.Fatalf("GetCampaign: %v", err)
	}
	if campaign.ID != 3 {
		t.Fatalf("unexpected campaign %+v", campaign)
	}
}

func TestUpdateStatusWalksTheLifecycle(t *testing.T) {
	store := &stubCampaignStore{campaign: &models.Campaign{ID: 3, BusinessID: 9, Status: "draft"}}
	service := NewCampaignService(store)

	campaign, err := service.UpdateStatus(context.Background(), 9, "business", 3, "activate")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if campaign.Status != "active" {
		t.Fatalf("expected active, got %q", campaign.Status)
	}

	store.campaign.Status = "active"
	campaign, err = service.UpdateStatus(context.Background(), 9, "business", 3, "complete")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if campaign.Status != "completed" {
		t.Fatalf("expected completed, got %q", campaign.Status)
	}
}

func TestUpdateStatusRejectsBadTransitions(t *testing.T) {
	store := &stubCampaignStore{campaign: &models.Campaign{ID: 3, BusinessID: 9, Status: "draft"}}
	service := NewCampaignService(store)

	if _, err := service.UpdateStatus(context.Background(), 9, "business", 3, "complete"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition for draft->completed, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), 9, "business", 3, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for unknown status, got %v", err)
	}

	store.campaign.Status = "completed"
	if _, err := service.UpdateStatus(context.Background(), 9, "business", 3, "cancel"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition for completed->cancelled, got %v", err)
	}
}

func TestUpdateStatusMapsLostRaceToTransitionError(t *testing.T) {
	store := &stubCampaignStore{
		campaign:  &models.Campaign{ID: 3, BusinessID: 9, Status: "draft"},
		updateErr: pgx.ErrNoRows,
	}
	service := NewCampaignService(store)

	if _, err := service.UpdateStatus(context.Background(), 9, "business", 3, "activate"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition when the row moved, got %v", err)
	}
}
