package services

import (
	"context"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
)

type AthleteProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateAthleteProfileInput) (*models.AthleteProfile, error)
}

type BusinessProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateBusinessProfileInput) (*models.BusinessProfile, error)
}

type ProfileService struct {
	athleteProfileRepo  AthleteProfileUpdater
	businessProfileRepo BusinessProfileUpdater
}

func NewProfileService(athleteProfileRepo AthleteProfileUpdater, businessProfileRepo BusinessProfileUpdater) *ProfileService {
	return &ProfileService{
		athleteProfileRepo:  athleteProfileRepo,
		businessProfileRepo: businessProfileRepo,
	}
}

func (s *ProfileService) UpdateAthleteProfile(ctx context.Context, userID int64, req repository.UpdateAthleteProfileInput) (*models.AthleteProfile, error) {
	return s.athleteProfileRepo.UpdatePartial(ctx, userID, req)
}

func (s *ProfileService) UpdateBusinessProfile(ctx context.Context, userID int64, req repository.UpdateBusinessProfileInput) (*models.BusinessProfile, error) {
	return s.businessProfileRepo.UpdatePartial(ctx, userID, req)
}
