package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubCampaignAppService struct {
	campaign   *models.Campaign
	campaigns  []models.Campaign
	err        error
	lastInput  services.CreateCampaignInput
	lastStatus string
	lastID     int64
}

func (s *stubCampaignAppService) CreateCampaign(_ context.Context, _ int64, input services.CreateCampaignInput) (*models.Campaign, error) {
	s.lastInput = input
	return s.campaign, s.err
}

func (s *stubCampaignAppService) ListCampaigns(_ context.Context, _ int64, _ string) ([]models.Campaign, error) {
	return s.campaigns, s.err
}

func (s *stubCampaignAppService) GetCampaign(_ context.Context, _ int64, _ string, campaignID int64) (*models.Campaign, error) {
	s.lastID = campaignID
	return s.campaign, s.err
}

func (s *stubCampaignAppService) UpdateStatus(_ context.Context, _ int64, _ string, campaignID int64, requestedStatus string) (*models.Campaign, error) {
	s.lastID = campaignID
	s.lastStatus = requestedStatus
	return s.campaign, s.err
}

func newCampaignApp(role string, handler *CampaignHandler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/campaigns", handler.CreateCampaign)
	app.Get("/api/v1/campaigns", handler.ListCampaigns)
	app.Get("/api/v1/campaigns/:id", handler.GetCampaign)
	app.Patch("/api/v1/campaigns/:id/status", handler.UpdateCampaignStatus)
	return app
}

func TestCreateCampaignReturnsCreated(t *testing.T) {
	service := &stubCampaignAppService{
		campaign: &models.Campaign{ID: 5, BusinessID: 42, Title: "Spring launch", Status: "draft"},
	}
	app := newCampaignApp("business", NewCampaignHandler(service))

	body := `{"title":"Spring launch","bundles":["2 feed posts"],"budget_range":"1k-5k"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastInput.Title != "Spring launch" || len(service.lastInput.Bundles) != 1 {
		t.Fatalf("unexpected forwarded input: %+v", service.lastInput)
	}

	var payload struct {
		Campaign models.Campaign `json:"campaign"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.Campaign.Status != "draft" {
		t.Fatalf("expected draft status, got %q", payload.Campaign.Status)
	}
}

func TestCreateCampaignForbiddenForAthletes(t *testing.T) {
	service := &stubCampaignAppService{}
	app := newCampaignApp("athlete", NewCampaignHandler(service))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if service.lastInput.Title != "" {
		t.Fatal("expected no service call for athlete callers")
	}
}

func TestUpdateCampaignStatusForwardsRequestedStatus(t *testing.T) {
	service := &stubCampaignAppService{
		campaign: &models.Campaign{ID: 5, BusinessID: 42, Title: "Spring launch", Status: "active"},
	}
	app := newCampaignApp("business", NewCampaignHandler(service))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/campaigns/5/status", strings.NewReader(`{"status":"activate"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastID != 5 || service.lastStatus != "activate" {
		t.Fatalf("unexpected forwarded status update: id=%d status=%q", service.lastID, service.lastStatus)
	}
}

func TestUpdateCampaignStatusMapsTransitionConflict(t *testing.T) {
	service := &stubCampaignAppService{err: services.ErrInvalidStateTransition}
	app := newCampaignApp("business", NewCampaignHandler(service))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/campaigns/5/status", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestGetCampaignRejectsBadID(t *testing.T) {
	service := &stubCampaignAppService{}
	app := newCampaignApp("business", NewCampaignHandler(service))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
