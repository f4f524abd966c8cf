package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/wizard"
)

type memorySessionStore struct {
	states map[string]*wizard.State
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{states: make(map[string]*wizard.State)}
}

func (s *memorySessionStore) Save(_ context.Context, state *wizard.State) error {
	s.states[state.SessionID] = state
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, sessionID string) (*wizard.State, error) {
	state, ok := s.states[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return state, nil
}

type stubAthleteOnboarding struct {
	calls int
	input repository.AthleteOnboardingInput
}

func (s *stubAthleteOnboarding) UpdateOnboarding(_ context.Context, userID int64, req repository.AthleteOnboardingInput) (*models.AthleteProfile, error) {
	s.calls++
	s.input = req
	return &models.AthleteProfile{
		UserID:             userID,
		FullName:           &req.FullName,
		OnboardingComplete: true,
	}, nil
}

type stubBusinessOnboarding struct {
	calls int
	input repository.BusinessOnboardingInput
}

func (s *stubBusinessOnboarding) UpdateOnboarding(_ context.Context, userID int64, req repository.BusinessOnboardingInput) (*models.BusinessProfile, error) {
	s.calls++
	s.input = req
	return &models.BusinessProfile{
		UserID:             userID,
		CompanyName:        &req.CompanyName,
		OnboardingComplete: true,
	}, nil
}

type stubRecommender struct {
	businesses []models.BusinessWithScore
	athletes   []models.AthleteWithScore
	err        error
}

func (s *stubRecommender) GetMatchedBusinesses(_ context.Context, _ *models.AthleteProfile, _ int) ([]models.BusinessWithScore, error) {
	return s.businesses, s.err
}

func (s *stubRecommender) GetMatchedAthletes(_ context.Context, _ *models.BusinessProfile, _ int) ([]models.AthleteWithScore, error) {
	return s.athletes, s.err
}

type stubCampaignGenerator struct {
	campaign *models.Campaign
	err      error
	calls    int
}

func (s *stubCampaignGenerator) GenerateStarter(_ context.Context, _ *models.BusinessProfile) (*models.Campaign, error) {
	s.calls++
	return s.campaign, s.err
}

func newTestOnboardingService(
	sessions sessionStateStore,
	athletes *stubAthleteOnboarding,
	businesses *stubBusinessOnboarding,
	matcher *stubRecommender,
	campaigns *stubCampaignGenerator,
) *OnboardingService {
	return NewOnboardingService(sessions, athletes, businesses, matcher, campaigns)
}

func athleteFormData() map[string]map[string]any {
	return map[string]map[string]any{
		"basicProfile": {
			"fullName": "Jane Doe",
			"email":    "jane@example.com",
			"zipCode":  "60601",
		},
		"athleteDetails": {
			"school":          "State University",
			"sport":           "basketball",
			"division":        "d1",
			"graduationYear":  "2027",
			"primaryPlatform": "instagram",
			"socialHandle":    "@janedoe",
			"followerCount":   25000,
		},
		"brandValues": {
			"values": []any{"community", "authenticity"},
		},
		"goals": {
			"goals":    []any{"brand_deals"},
			"timeline": "3_months",
		},
		"audienceInfo": {
			"audienceAge":     []any{"18-24"},
			"audienceRegions": []any{"midwest"},
			"engagementRate":  4.2,
		},
		"compensation": {
			"minDealValue":      500,
			"compensationTypes": []any{"paid"},
			"termsAccepted":     true,
		},
	}
}

func businessFormData() map[string]map[string]any {
	return map[string]map[string]any{
		"basicProfile": {
			"fullName": "Sam Lee",
			"email":    "sam@acme.com",
		},
		"businessDetails": {
			"companyName": "Acme Sports",
			"industry":    "apparel",
			"companySize": "11-50",
		},
		"brandValues": {
			"values": []any{"community"},
		},
		"goals": {
			"objectives": []any{"brand_awareness"},
			"timeline":   "3_months",
		},
		"audienceInfo": {
			"audienceAge":   []any{"18-24"},
			"targetRegions": []any{"national"},
			"channels":      []any{"instagram"},
		},
		"compensation": {
			"budgetRange":       "1k-5k",
			"compensationTypes": []any{"paid"},
			"termsAccepted":     true,
		},
	}
}

func TestStartSessionBeginsAtWelcome(t *testing.T) {
	sessions := newMemorySessionStore()
	service := newTestOnboardingService(sessions, &stubAthleteOnboarding{}, &stubBusinessOnboarding{}, &stubRecommender{}, &stubCampaignGenerator{})

	state, err := service.StartSession(context.Background(), "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if state.Step != wizard.StepWelcome {
		t.Fatalf("expected welcome step, got %s", state.Step)
	}
	if state.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if _, ok := sessions.states[state.SessionID]; !ok {
		t.Fatal("expected session to be persisted")
	}
}

func TestStartSessionWithKnownUserTypeSkipsSelection(t *testing.T) {
	service := newTestOnboardingService(newMemorySessionStore(), &stubAthleteOnboarding{}, &stubBusinessOnboarding{}, &stubRecommender{}, &stubCampaignGenerator{})

	state, err := service.StartSession(context.Background(), "business")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if state.Step != wizard.StepBasicProfile {
		t.Fatalf("expected basic profile step, got %s", state.Step)
	}
	if state.UserType != wizard.UserTypeBusiness {
		t.Fatalf("expected business user type, got %q", state.UserType)
	}

	if _, err := service.StartSession(context.Background(), "agency"); !errors.Is(err, wizard.ErrInvalidUserType) {
		t.Fatalf("expected ErrInvalidUserType for unknown type, got %v", err)
	}
}

func TestAdvanceStepPersistsValidationErrors(t *testing.T) {
	sessions := newMemorySessionStore()
	service := newTestOnboardingService(sessions, &stubAthleteOnboarding{}, &stubBusinessOnboarding{}, &stubRecommender{}, &stubCampaignGenerator{})

	state, err := service.StartSession(context.Background(), "athlete")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	returned, err := service.AdvanceStep(context.Background(), state.SessionID)
	if !errors.Is(err, wizard.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if returned.Step != wizard.StepBasicProfile {
		t.Fatalf("expected to stay on basic profile, got %s", returned.Step)
	}
	stored := sessions.states[state.SessionID]
	if stored.Errors["fullName"] != "Full name is required" {
		t.Fatalf("expected persisted fullName error, got %q", stored.Errors["fullName"])
	}
}

func TestSubmitRequiresSessionAndUserType(t *testing.T) {
	service := newTestOnboardingService(newMemorySessionStore(), &stubAthleteOnboarding{}, &stubBusinessOnboarding{}, &stubRecommender{}, &stubCampaignGenerator{})

	_, _, err := service.Submit(context.Background(), SubmitInput{SessionID: "", UserType: "athlete"})
	if !errors.Is(err, ErrMissingSessionOrType) {
		t.Fatalf("expected ErrMissingSessionOrType for empty session, got %v", err)
	}

	_, _, err = service.Submit(context.Background(), SubmitInput{SessionID: "abc", UserType: " "})
	if !errors.Is(err, ErrMissingSessionOrType) {
		t.Fatalf("expected ErrMissingSessionOrType for blank type, got %v", err)
	}

	_, _, err = service.Submit(context.Background(), SubmitInput{SessionID: "abc", UserType: "athlete"})
	if !errors.Is(err, repository.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for unknown session, got %v", err)
	}
}

func TestSubmitReturnsFieldErrorsWithoutPersisting(t *testing.T) {
	sessions := newMemorySessionStore()
	athletes := &stubAthleteOnboarding{}
	service := newTestOnboardingService(sessions, athletes, &stubBusinessOnboarding{}, &stubRecommender{}, &stubCampaignGenerator{})

	state, err := service.StartSession(context.Background(), "athlete")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	data := athleteFormData()
	delete(data["compensation"], "termsAccepted")
	delete(data["athleteDetails"], "school")

	_, fieldErrors, err := service.Submit(context.Background(), SubmitInput{
		SessionID: state.SessionID,
		UserID:    7,
		UserType:  "athlete",
		FormData:  data,
	})
	if !errors.Is(err, wizard.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if fieldErrors["school"] != "School is required" {
		t.Fatalf("expected school error, got %q", fieldErrors["school"])
	}
	if _, ok := fieldErrors["termsAccepted"]; !ok {
		t.Fatal("expected termsAccepted error")
	}
	if athletes.calls != 0 {
		t.Fatalf("expected no persistence on validation failure, got %d calls", athletes.calls)
	}
	if sessions.states[state.SessionID].Completed() {
		t.Fatal("expected session to remain open after validation failure")
	}
}

func TestSubmitAthleteReturnsBusinessRecommendations(t *testing.T) {
	sessions := newMemorySessionStore()
	athletes := &stubAthleteOnboarding{}
	acme := "Acme Sports"
	zenith := "Zenith Fuel"
	matcher := &stubRecommender{
		businesses: []models.BusinessWithScore{
			{BusinessProfile: models.BusinessProfile{CompanyName: &acme}, MatchScore: 80},
			{BusinessProfile: models.BusinessProfile{CompanyName: &zenith}, MatchScore: 55},
		},
	}
	campaigns := &stubCampaignGenerator{}
	service := newTestOnboardingService(sessions, athletes, &stubBusinessOnboarding{}, matcher, campaigns)

	state, err := service.StartSession(context.Background(), "athlete")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	result, fieldErrors, err := service.Submit(context.Background(), SubmitInput{
		SessionID: state.SessionID,
		UserID:    7,
		UserType:  "athlete",
		FormData:  athleteFormData(),
	})
	if err != nil {
		t.Fatalf("Submit: %v (field errors %v)", err, fieldErrors)
	}

	if result.UserType != wizard.UserTypeAthlete {
		t.Fatalf("expected athlete result, got %q", result.UserType)
	}
	if len(result.Recommendations) != 2 || result.Recommendations[0] != "Acme Sports" {
		t.Fatalf("unexpected recommendations: %v", result.Recommendations)
	}
	if result.Campaign != nil {
		t.Fatal("athlete submission must not produce a campaign")
	}
	if campaigns.calls != 0 {
		t.Fatalf("expected no campaign generation for athletes, got %d calls", campaigns.calls)
	}

	if athletes.calls != 1 {
		t.Fatalf("expected exactly one persistence attempt, got %d", athletes.calls)
	}
	if athletes.input.FullName != "Jane Doe" || athletes.input.School != "State University" {
		t.Fatalf("unexpected onboarding input: %+v", athletes.input)
	}
	if athletes.input.FollowerCount == nil || *athletes.input.FollowerCount != 25000 {
		t.Fatalf("expected follower count 25000, got %v", athletes.input.FollowerCount)
	}
	if athletes.input.MinDealValue == nil || *athletes.input.MinDealValue != 500 {
		t.Fatalf("expected min deal value 500, got %v", athletes.input.MinDealValue)
	}

	if !sessions.states[state.SessionID].Completed() {
		t.Fatal("expected session to be marked complete")
	}
	_, _, err = service.Submit(context.Background(), SubmitInput{
		SessionID: state.SessionID,
		UserID:    7,
		UserType:  "athlete",
		FormData:  athleteFormData(),
	})
	if !errors.Is(err, ErrSessionConsumed) {
		t.Fatalf("expected ErrSessionConsumed on resubmission, got %v", err)
	}
}

func TestSubmitBusinessGeneratesStarterCampaign(t *testing.T) {
	sessions := newMemorySessionStore()
	businesses := &stubBusinessOnboarding{}
	jane := "Jane Doe"
	matcher := &stubRecommender{
		athletes: []models.AthleteWithScore{
			{AthleteProfile: models.AthleteProfile{FullName: &jane}, MatchScore: 70},
		},
	}
	campaigns := &stubCampaignGenerator{
		campaign: &models.Campaign{ID: 1, Title: "Acme Sports athlete launch", Status: "draft", Generated: true},
	}
	service := newTestOnboardingService(sessions, &stubAthleteOnboarding{}, businesses, matcher, campaigns)

	state, err := service.StartSession(context.Background(), "business")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	result, fieldErrors, err := service.Submit(context.Background(), SubmitInput{
		SessionID: state.SessionID,
		UserID:    9,
		UserType:  "business",
		FormData:  businessFormData(),
	})
	if err != nil {
		t.Fatalf("Submit: %v (field errors %v)", err, fieldErrors)
	}

	if result.Campaign == nil || result.Campaign.Title != "Acme Sports athlete launch" {
		t.Fatalf("expected starter campaign, got %+v", result.Campaign)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0] != "Jane Doe" {
		t.Fatalf("unexpected recommendations: %v", result.Recommendations)
	}
	if businesses.input.CompanyName != "Acme Sports" || businesses.input.BudgetRange != "1k-5k" {
		t.Fatalf("unexpected onboarding input: %+v", businesses.input)
	}
	if businesses.input.ContactName != "Sam Lee" {
		t.Fatalf("expected contact name from basic profile, got %q", businesses.input.ContactName)
	}
}

func TestSubmitSurvivesRecommendationFailure(t *testing.T) {
	sessions := newMemorySessionStore()
	matcher := &stubRecommender{err: errors.New("scoring unavailable")}
	service := newTestOnboardingService(sessions, &stubAthleteOnboarding{}, &stubBusinessOnboarding{}, matcher, &stubCampaignGenerator{})

	state, err := service.StartSession(context.Background(), "athlete")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	result, _, err := service.Submit(context.Background(), SubmitInput{
		SessionID: state.SessionID,
		UserID:    7,
		UserType:  "athlete",
		FormData:  athleteFormData(),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("expected empty recommendations, got %v", result.Recommendations)
	}
}
