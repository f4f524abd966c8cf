package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/jackc/pgx/v5"
)

var (
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidInput           = errors.New("invalid input")
	ErrAthleteNotFound        = errors.New("athlete not found")
)

type campaignStore interface {
	Create(ctx context.Context, input repository.CreateCampaignInput) (*models.Campaign, error)
	GetByID(ctx context.Context, campaignID int64) (*models.Campaign, error)
	ListByBusinessID(ctx context.Context, businessID int64) ([]models.Campaign, error)
	UpdateStatusIfCurrent(ctx context.Context, campaignID int64, currentStatus, nextStatus string) (*models.Campaign, error)
}

type CampaignService struct {
	campaignRepo campaignStore
}

func NewCampaignService(campaignRepo campaignStore) *CampaignService {
	return &CampaignService{campaignRepo: campaignRepo}
}

type CreateCampaignInput struct {
	Title       string
	Description *string
	Bundles     []string
	BudgetRange *string
}

func (s *CampaignService) CreateCampaign(
	ctx context.Context,
	businessID int64,
	input CreateCampaignInput,
) (*models.Campaign, error) {
	title := strings.TrimSpace(input.Title)
	if businessID <= 0 || title == "" {
		return nil, ErrInvalidInput
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		description = &trimmed
	}

	for _, bundle := range input.Bundles {
		if strings.TrimSpace(bundle) == "" {
			return nil, ErrInvalidInput
		}
	}

	return s.campaignRepo.Create(ctx, repository.CreateCampaignInput{
		BusinessID:  businessID,
		Title:       title,
		Description: description,
		Bundles:     input.Bundles,
		BudgetRange: input.BudgetRange,
	})
}

// GenerateStarter builds the draft campaign handed back at the end of
// business onboarding, derived from the profile the wizard just collected.
func (s *CampaignService) GenerateStarter(
	ctx context.Context,
	profile *models.BusinessProfile,
) (*models.Campaign, error) {
	if profile == nil {
		return nil, ErrInvalidInput
	}

	companyName := "Your brand"
	if profile.CompanyName != nil && strings.TrimSpace(*profile.CompanyName) != "" {
		companyName = strings.TrimSpace(*profile.CompanyName)
	}

	title := fmt.Sprintf("%s athlete launch", companyName)
	description := starterDescription(profile)

	return s.campaignRepo.Create(ctx, repository.CreateCampaignInput{
		BusinessID:  profile.UserID,
		Title:       title,
		Description: &description,
		Bundles:     starterBundles(profile),
		BudgetRange: profile.BudgetRange,
		Generated:   true,
	})
}

func (s *CampaignService) ListCampaigns(
	ctx context.Context,
	actorID int64,
	role string,
) ([]models.Campaign, error) {
	if role != "business" {
		return nil, ErrForbidden
	}
	return s.campaignRepo.ListByBusinessID(ctx, actorID)
}

func (s *CampaignService) GetCampaign(
	ctx context.Context,
	actorID int64,
	role string,
	campaignID int64,
) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if role != "business" || campaign.BusinessID != actorID {
		return nil, ErrForbidden
	}
	return campaign, nil
}

func (s *CampaignService) UpdateStatus(
	ctx context.Context,
	actorID int64,
	role string,
	campaignID int64,
	requestedStatus string,
) (*models.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, actorID, role, campaignID)
	if err != nil {
		return nil, err
	}

	nextStatus, err := normalizeCampaignStatus(requestedStatus)
	if err != nil {
		return nil, err
	}
	if err := validateCampaignTransition(campaign.Status, nextStatus); err != nil {
		return nil, err
	}

	updated, err := s.campaignRepo.UpdateStatusIfCurrent(ctx, campaignID, campaign.Status, nextStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}
	return updated, nil
}

func normalizeCampaignStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "activate", "active":
		return "active", nil
	case "complete", "completed":
		return "completed", nil
	case "cancel", "cancelled", "canceled":
		return "cancelled", nil
	default:
		return "", ErrInvalidStatus
	}
}

func validateCampaignTransition(current, next string) error {
	switch next {
	case "active":
		if current != "draft" {
			return ErrInvalidStateTransition
		}
	case "completed":
		if current != "active" {
			return ErrInvalidStateTransition
		}
	case "cancelled":
		if current == "completed" || current == "cancelled" {
			return ErrInvalidStateTransition
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}

func starterDescription(profile *models.BusinessProfile) string {
	objectives := sliceValue(profile.Objectives)
	if len(objectives) == 0 {
		return "Starter campaign generated from your onboarding answers."
	}
	readable := make([]string, 0, len(objectives))
	for _, objective := range objectives {
		readable = append(readable, strings.ReplaceAll(objective, "_", " "))
	}
	return fmt.Sprintf("Starter campaign focused on %s, generated from your onboarding answers.",
		strings.Join(readable, ", "))
}

var objectiveBundles = map[string]string{
	"brand_awareness": "3 feed posts + 1 story takeover",
	"local_marketing": "2 in-person appearances + event shoutout",
	"product_launch":  "unboxing video + 2 feed posts",
	"social_content":  "4 short-form videos",
	"event_promotion": "event countdown series + live coverage",
}

func starterBundles(profile *models.BusinessProfile) []string {
	bundles := make([]string, 0)
	for _, objective := range sliceValue(profile.Objectives) {
		if bundle, ok := objectiveBundles[normalize(objective)]; ok {
			bundles = append(bundles, bundle)
		}
	}
	if len(bundles) == 0 {
		bundles = append(bundles, "2 feed posts + 1 story")
	}
	return bundles
}
