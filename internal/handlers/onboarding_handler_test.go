package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/services"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/wizard"
	"github.com/gofiber/fiber/v2"
)

type stubOnboardingFlow struct {
	state        *wizard.State
	err          error
	result       *services.SubmissionResult
	fieldErrors  map[string]string
	submitErr    error
	lastSubmit   services.SubmitInput
	lastSection  wizard.SectionKey
	lastValues   map[string]any
	lastUserType string
}

func (s *stubOnboardingFlow) StartSession(_ context.Context, userType string) (*wizard.State, error) {
	s.lastUserType = userType
	return s.state, s.err
}

func (s *stubOnboardingFlow) GetSession(_ context.Context, _ string) (*wizard.State, error) {
	return s.state, s.err
}

func (s *stubOnboardingFlow) SelectUserType(_ context.Context, _ string, userType string) (*wizard.State, error) {
	s.lastUserType = userType
	return s.state, s.err
}

func (s *stubOnboardingFlow) SetFields(_ context.Context, _ string, section wizard.SectionKey, values map[string]any) (*wizard.State, error) {
	s.lastSection = section
	s.lastValues = values
	return s.state, s.err
}

func (s *stubOnboardingFlow) AdvanceStep(_ context.Context, _ string) (*wizard.State, error) {
	return s.state, s.err
}

func (s *stubOnboardingFlow) StepBack(_ context.Context, _ string) (*wizard.State, error) {
	return s.state, s.err
}

func (s *stubOnboardingFlow) Submit(_ context.Context, input services.SubmitInput) (*services.SubmissionResult, map[string]string, error) {
	s.lastSubmit = input
	return s.result, s.fieldErrors, s.submitErr
}

func newOnboardingApp(flow *stubOnboardingFlow) *fiber.App {
	handler := NewOnboardingHandler(flow)

	app := fiber.New()
	app.Post("/api/chat/session", handler.StartSession)
	app.Get("/api/onboarding/:sessionId", handler.GetSession)
	app.Post("/api/onboarding/:sessionId/user-type", handler.SelectUserType)
	app.Put("/api/onboarding/:sessionId/fields", handler.SetFields)
	app.Post("/api/onboarding/:sessionId/next", handler.NextStep)

	authed := app.Group("", func(c *fiber.Ctx) error {
		c.Locals("role", "athlete")
		c.Locals("user_id", "7")
		return c.Next()
	})
	authed.Post("/api/personalized-onboarding", handler.SubmitOnboarding)
	return app
}

func decodeJSONBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestStartSessionReturnsSessionID(t *testing.T) {
	flow := &stubOnboardingFlow{state: wizard.New("session-1")}
	app := newOnboardingApp(flow)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/session", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	payload := decodeJSONBody(t, resp)
	if payload["sessionId"] != "session-1" {
		t.Fatalf("expected sessionId session-1, got %#v", payload["sessionId"])
	}
	if payload["step"] != "welcome" {
		t.Fatalf("expected welcome step, got %#v", payload["step"])
	}
	if flow.lastUserType != "" {
		t.Fatalf("expected empty user type passthrough, got %q", flow.lastUserType)
	}
}

func TestStartSessionForwardsKnownUserType(t *testing.T) {
	flow := &stubOnboardingFlow{state: wizard.NewWithUserType("session-2", wizard.UserTypeBusiness)}
	app := newOnboardingApp(flow)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/session", strings.NewReader(`{"userType":"business"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if flow.lastUserType != "business" {
		t.Fatalf("expected business user type, got %q", flow.lastUserType)
	}
	payload := decodeJSONBody(t, resp)
	if payload["step"] != "basic_profile" {
		t.Fatalf("expected basic_profile step, got %#v", payload["step"])
	}
}

func TestSetFieldsRequiresSectionAndValues(t *testing.T) {
	flow := &stubOnboardingFlow{state: wizard.New("session-3")}
	app := newOnboardingApp(flow)

	for _, body := range []string{
		`{"values":{"fullName":"Jordan"}}`,
		`{"section":"basicProfile"}`,
	} {
		req := httptest.NewRequest(http.MethodPut, "/api/onboarding/session-3/fields", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.StatusCode)
		}
	}
	if flow.lastSection != "" {
		t.Fatal("expected no service call for incomplete requests")
	}
}

func TestNextStepReturnsValidationErrors(t *testing.T) {
	state := wizard.NewWithUserType("session-4", wizard.UserTypeAthlete)
	state.Errors = map[string]string{"fullName": "Full name is required"}
	flow := &stubOnboardingFlow{state: state, err: wizard.ErrValidation}
	app := newOnboardingApp(flow)

	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/session-4/next", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	payload := decodeJSONBody(t, resp)
	errs, ok := payload["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors map, got %#v", payload["errors"])
	}
	if errs["fullName"] != "Full name is required" {
		t.Fatalf("expected fullName error, got %#v", errs["fullName"])
	}
}

func TestGetSessionNotFound(t *testing.T) {
	flow := &stubOnboardingFlow{err: repository.ErrSessionNotFound}
	app := newOnboardingApp(flow)

	req := httptest.NewRequest(http.MethodGet, "/api/onboarding/missing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSelectUserTypeLockedConflict(t *testing.T) {
	flow := &stubOnboardingFlow{err: wizard.ErrUserTypeLocked}
	app := newOnboardingApp(flow)

	req := httptest.NewRequest(http.MethodPost, "/api/onboarding/session-5/user-type", strings.NewReader(`{"userType":"business"}`))
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

func TestSubmitOnboardingRejectsRoleMismatch(t *testing.T) {
	flow := &stubOnboardingFlow{}
	app := newOnboardingApp(flow)

	body := `{"sessionId":"session-6","userType":"business"}`
	req := httptest.NewRequest(http.MethodPost, "/api/personalized-onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if flow.lastSubmit.SessionID != "" {
		t.Fatal("expected no submit call on role mismatch")
	}
}

func TestSubmitOnboardingReturnsFieldErrors(t *testing.T) {
	flow := &stubOnboardingFlow{
		fieldErrors: map[string]string{"school": "School is required"},
		submitErr:   wizard.ErrValidation,
	}
	app := newOnboardingApp(flow)

	body := `{"sessionId":"session-7","userType":"athlete","formData":{"athleteDetails":{"sport":"basketball"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/personalized-onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	payload := decodeJSONBody(t, resp)
	if payload["error"] != "Validation failed" {
		t.Fatalf("expected Validation failed, got %#v", payload["error"])
	}
	errs, ok := payload["errors"].(map[string]any)
	if !ok || errs["school"] != "School is required" {
		t.Fatalf("expected school error, got %#v", payload["errors"])
	}
}

func TestSubmitOnboardingUnknownSession(t *testing.T) {
	flow := &stubOnboardingFlow{submitErr: repository.ErrSessionNotFound}
	app := newOnboardingApp(flow)

	body := `{"sessionId":"missing","userType":"athlete"}`
	req := httptest.NewRequest(http.MethodPost, "/api/personalized-onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSubmitOnboardingSuccessIncludesRecommendations(t *testing.T) {
	flow := &stubOnboardingFlow{
		result: &services.SubmissionResult{
			UserType:        wizard.UserTypeAthlete,
			Recommendations: []string{"Acme Sports", "Peak Performance"},
		},
	}
	app := newOnboardingApp(flow)

	body := `{"sessionId":"session-8","userType":"athlete","formData":{"compensation":{"termsAccepted":true}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/personalized-onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if flow.lastSubmit.UserID != 7 {
		t.Fatalf("expected user id 7 from token, got %d", flow.lastSubmit.UserID)
	}
	if flow.lastSubmit.FormData["compensation"]["termsAccepted"] != true {
		t.Fatal("expected form data to be forwarded")
	}
	payload := decodeJSONBody(t, resp)
	if payload["success"] != true {
		t.Fatalf("expected success true, got %#v", payload["success"])
	}
	recs, ok := payload["recommendations"].([]any)
	if !ok || len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %#v", payload["recommendations"])
	}
	if _, present := payload["campaign"]; present {
		t.Fatal("expected no campaign for athlete submissions")
	}
}

func TestSubmitOnboardingIncludesStarterCampaign(t *testing.T) {
	flow := &stubOnboardingFlow{
		result: &services.SubmissionResult{
			UserType:        wizard.UserTypeBusiness,
			Recommendations: []string{"Jordan Reyes"},
			Campaign:        &models.Campaign{ID: 31, Title: "Acme Sports athlete launch", Status: "draft"},
		},
	}
	handler := NewOnboardingHandler(flow)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "business")
		c.Locals("user_id", "12")
		return c.Next()
	})
	app.Post("/api/personalized-onboarding", handler.SubmitOnboarding)

	body := `{"sessionId":"session-9","userType":"business"}`
	req := httptest.NewRequest(http.MethodPost, "/api/personalized-onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	payload := decodeJSONBody(t, resp)
	campaign, ok := payload["campaign"].(map[string]any)
	if !ok {
		t.Fatalf("expected campaign object, got %#v", payload["campaign"])
	}
	if campaign["title"] != "Acme Sports athlete launch" {
		t.Fatalf("expected starter campaign title, got %#v", campaign["title"])
	}
}
