package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/wizard"
	"github.com/google/uuid"
)

var (
	ErrMissingSessionOrType = errors.New("missing session or user type")
	ErrSessionConsumed      = errors.New("onboarding session already submitted")
)

const recommendationLimit = 5

type sessionStateStore interface {
	Save(ctx context.Context, state *wizard.State) error
	Get(ctx context.Context, sessionID string) (*wizard.State, error)
}

type athleteOnboardingStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.AthleteOnboardingInput) (*models.AthleteProfile, error)
}

type businessOnboardingStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.BusinessOnboardingInput) (*models.BusinessProfile, error)
}

type matchRecommender interface {
	GetMatchedBusinesses(ctx context.Context, athlete *models.AthleteProfile, limit int) ([]models.BusinessWithScore, error)
	GetMatchedAthletes(ctx context.Context, business *models.BusinessProfile, limit int) ([]models.AthleteWithScore, error)
}

type starterCampaignGenerator interface {
	GenerateStarter(ctx context.Context, profile *models.BusinessProfile) (*models.Campaign, error)
}

// OnboardingService drives the wizard session lifecycle and turns a finished
// session into persisted profile data, recommendations and, for businesses, a
// starter campaign.
type OnboardingService struct {
	sessions     sessionStateStore
	athleteRepo  athleteOnboardingStore
	businessRepo businessOnboardingStore
	matcher      matchRecommender
	campaigns    starterCampaignGenerator
}

func NewOnboardingService(
	sessions sessionStateStore,
	athleteRepo athleteOnboardingStore,
	businessRepo businessOnboardingStore,
	matcher matchRecommender,
	campaigns starterCampaignGenerator,
) *OnboardingService {
	return &OnboardingService{
		sessions:     sessions,
		athleteRepo:  athleteRepo,
		businessRepo: businessRepo,
		matcher:      matcher,
		campaigns:    campaigns,
	}
}

// StartSession creates a fresh wizard session. Callers who already know their
// user type skip the welcome and selection steps.
func (s *OnboardingService) StartSession(ctx context.Context, userTypeRaw string) (*wizard.State, error) {
	sessionID := uuid.NewString()

	var state *wizard.State
	if userTypeRaw == "" {
		state = wizard.New(sessionID)
	} else {
		userType, ok := wizard.ParseUserType(userTypeRaw)
		if !ok {
			return nil, wizard.ErrInvalidUserType
		}
		state = wizard.NewWithUserType(sessionID, userType)
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *OnboardingService) GetSession(ctx context.Context, sessionID string) (*wizard.State, error) {
	return s.sessions.Get(ctx, sessionID)
}

func (s *OnboardingService) SelectUserType(ctx context.Context, sessionID, userTypeRaw string) (*wizard.State, error) {
	userType, ok := wizard.ParseUserType(userTypeRaw)
	if !ok {
		return nil, wizard.ErrInvalidUserType
	}

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := state.SelectUserType(userType); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SetFields writes a batch of values into the section of the session's
// current step.
func (s *OnboardingService) SetFields(
	ctx context.Context,
	sessionID string,
	section wizard.SectionKey,
	values map[string]any,
) (*wizard.State, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for fieldID, value := range values {
		if err := state.SetField(section, fieldID, value); err != nil {
			return nil, err
		}
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// AdvanceStep validates the current section and moves forward. On validation
// failure the field errors are persisted with the session so a reload shows
// them again; the returned state carries them alongside wizard.ErrValidation.
func (s *OnboardingService) AdvanceStep(ctx context.Context, sessionID string) (*wizard.State, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	advanceErr := state.Advance()
	if advanceErr != nil && !errors.Is(advanceErr, wizard.ErrValidation) {
		return nil, advanceErr
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, advanceErr
}

func (s *OnboardingService) StepBack(ctx context.Context, sessionID string) (*wizard.State, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := state.Back(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

type SubmitInput struct {
	SessionID string
	UserID    int64
	UserType  string
	FormData  map[string]map[string]any
}

type SubmissionResult struct {
	UserType        wizard.UserType  `json:"user_type"`
	Recommendations []string         `json:"recommendations"`
	Campaign        *models.Campaign `json:"campaign,omitempty"`
}

// Submit runs the full submission pipeline: precondition checks, a final
// validation pass over every section of the chosen branch, exactly one
// persistence attempt, then recommendations and the business starter
// campaign. A non-nil error map means validation failed and nothing was
// persisted.
func (s *OnboardingService) Submit(ctx context.Context, input SubmitInput) (*SubmissionResult, map[string]string, error) {
	if strings.TrimSpace(input.SessionID) == "" || strings.TrimSpace(input.UserType) == "" {
		return nil, nil, ErrMissingSessionOrType
	}
	userType, ok := wizard.ParseUserType(input.UserType)
	if !ok {
		return nil, nil, wizard.ErrInvalidUserType
	}

	state, err := s.sessions.Get(ctx, input.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if state.Completed() {
		return nil, nil, ErrSessionConsumed
	}

	data := mergeFormData(state.Data, input.FormData)
	if fieldErrors := wizard.ValidateSubmission(userType, data); len(fieldErrors) > 0 {
		return nil, fieldErrors, wizard.ErrValidation
	}

	result := &SubmissionResult{UserType: userType, Recommendations: []string{}}

	switch userType {
	case wizard.UserTypeAthlete:
		profile, err := s.athleteRepo.UpdateOnboarding(ctx, input.UserID, athleteInputFromData(data))
		if err != nil {
			return nil, nil, err
		}
		result.Recommendations = s.businessRecommendations(ctx, profile)
	case wizard.UserTypeBusiness:
		profile, err := s.businessRepo.UpdateOnboarding(ctx, input.UserID, businessInputFromData(data))
		if err != nil {
			return nil, nil, err
		}
		result.Recommendations = s.athleteRecommendations(ctx, profile)

		campaign, err := s.campaigns.GenerateStarter(ctx, profile)
		if err != nil {
			log.Printf("starter campaign generation failed for user %d: %v", input.UserID, err)
		} else {
			result.Campaign = campaign
		}
	}

	state.Data = data
	state.UserType = userType
	state.MarkComplete()
	if err := s.sessions.Save(ctx, state); err != nil {
		log.Printf("failed to persist consumed session %s: %v", input.SessionID, err)
	}

	return result, nil, nil
}

// Recommendations are best effort: a scoring failure never rolls back an
// already persisted submission.
func (s *OnboardingService) businessRecommendations(ctx context.Context, athlete *models.AthleteProfile) []string {
	names := []string{}
	matched, err := s.matcher.GetMatchedBusinesses(ctx, athlete, recommendationLimit)
	if err != nil {
		log.Printf("business recommendations failed for user %d: %v", athlete.UserID, err)
		return names
	}
	for _, business := range matched {
		if business.CompanyName != nil && *business.CompanyName != "" {
			names = append(names, *business.CompanyName)
		}
	}
	return names
}

func (s *OnboardingService) athleteRecommendations(ctx context.Context, business *models.BusinessProfile) []string {
	names := []string{}
	matched, err := s.matcher.GetMatchedAthletes(ctx, business, recommendationLimit)
	if err != nil {
		log.Printf("athlete recommendations failed for user %d: %v", business.UserID, err)
		return names
	}
	for _, athlete := range matched {
		if athlete.FullName != nil && *athlete.FullName != "" {
			names = append(names, *athlete.FullName)
		}
	}
	return names
}

// mergeFormData lays the payload supplied with the final submission over the
// values accumulated in the session, without mutating the session copy until
// validation has passed.
func mergeFormData(existing wizard.FormData, submitted map[string]map[string]any) wizard.FormData {
	merged := make(wizard.FormData, len(existing))
	for key, section := range existing {
		copied := make(wizard.Section, len(section))
		for id, value := range section {
			copied[id] = value
		}
		merged[key] = copied
	}

	for key, values := range submitted {
		section := merged[wizard.SectionKey(key)]
		if section == nil {
			section = make(wizard.Section, len(values))
			merged[wizard.SectionKey(key)] = section
		}
		for id, value := range values {
			section[id] = value
		}
	}

	return merged
}

func athleteInputFromData(data wizard.FormData) repository.AthleteOnboardingInput {
	basic := data[wizard.SectionBasicProfile]
	details := data[wizard.SectionAthleteDetails]
	brand := data[wizard.SectionBrandValues]
	goals := data[wizard.SectionGoals]
	audience := data[wizard.SectionAudienceInfo]
	compensation := data[wizard.SectionCompensation]

	return repository.AthleteOnboardingInput{
		FullName:          basic.String("fullName"),
		Email:             basic.String("email"),
		Phone:             optString(basic, "phone"),
		ZipCode:           optString(basic, "zipCode"),
		School:            details.String("school"),
		Sport:             details.String("sport"),
		Division:          details.String("division"),
		GraduationYear:    details.String("graduationYear"),
		PrimaryPlatform:   details.String("primaryPlatform"),
		SocialHandle:      details.String("socialHandle"),
		FollowerCount:     optInt(details, "followerCount"),
		AgentName:         optString(details, "agentName"),
		BrandValues:       brand.Strings("values"),
		MissionStatement:  optString(brand, "missionStatement"),
		Goals:             goals.Strings("goals"),
		Timeline:          goals.String("timeline"),
		AudienceAge:       audience.Strings("audienceAge"),
		AudienceRegions:   audience.Strings("audienceRegions"),
		EngagementRate:    optFloat(audience, "engagementRate"),
		MinDealValue:      optFloat(compensation, "minDealValue"),
		CompensationTypes: compensation.Strings("compensationTypes"),
		OpenToTrade:       compensation.Bool("openToTrade"),
	}
}

func businessInputFromData(data wizard.FormData) repository.BusinessOnboardingInput {
	basic := data[wizard.SectionBasicProfile]
	details := data[wizard.SectionBusinessDetails]
	brand := data[wizard.SectionBrandValues]
	goals := data[wizard.SectionGoals]
	audience := data[wizard.SectionAudienceInfo]
	compensation := data[wizard.SectionCompensation]

	return repository.BusinessOnboardingInput{
		CompanyName:       details.String("companyName"),
		ContactName:       basic.String("fullName"),
		Email:             basic.String("email"),
		Phone:             optString(basic, "phone"),
		ZipCode:           optString(basic, "zipCode"),
		Industry:          details.String("industry"),
		Website:           optString(details, "website"),
		CompanySize:       details.String("companySize"),
		BrandValues:       brand.Strings("values"),
		MissionStatement:  optString(brand, "missionStatement"),
		Objectives:        goals.Strings("objectives"),
		Timeline:          goals.String("timeline"),
		TargetAge:         audience.Strings("audienceAge"),
		TargetRegions:     audience.Strings("targetRegions"),
		Channels:          audience.Strings("channels"),
		BudgetRange:       compensation.String("budgetRange"),
		CompensationTypes: compensation.Strings("compensationTypes"),
	}
}

func optString(section wizard.Section, id string) *string {
	value := strings.TrimSpace(section.String(id))
	if value == "" {
		return nil
	}
	return &value
}

func optFloat(section wizard.Section, id string) *float64 {
	if _, ok := section[id]; !ok {
		return nil
	}
	value := section.Float(id)
	return &value
}

func optInt(section wizard.Section, id string) *int {
	if _, ok := section[id]; !ok {
		return nil
	}
	value := int(section.Float(id))
	return &value
}
