package services

import (
	"context"
	"sort"
	"strings"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
)

type athleteLister interface {
	ListComplete(ctx context.Context) ([]models.AthleteProfile, error)
}

type businessLister interface {
	ListComplete(ctx context.Context) ([]models.BusinessProfile, error)
}

// MatchingService scores athletes against businesses for recommendation
// lists. Scoring is deterministic: the same profiles always produce the same
// ordering.
type MatchingService struct {
	athleteRepo  athleteLister
	businessRepo businessLister
}

func NewMatchingService(athleteRepo athleteLister, businessRepo businessLister) *MatchingService {
	return &MatchingService{
		athleteRepo:  athleteRepo,
		businessRepo: businessRepo,
	}
}

func (s *MatchingService) GetMatchedAthletes(
	ctx context.Context,
	business *models.BusinessProfile,
	limit int,
) ([]models.AthleteWithScore, error) {
	athletes, err := s.athleteRepo.ListComplete(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.AthleteWithScore, 0, len(athletes))
	for _, athlete := range athletes {
		matched = append(matched, models.AthleteWithScore{
			AthleteProfile: athlete,
			MatchScore:     scoreAthleteForBusiness(business, &athlete),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].MatchScore == matched[j].MatchScore {
			return intValue(matched[i].FollowerCount) > intValue(matched[j].FollowerCount)
		}
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (s *MatchingService) GetMatchedBusinesses(
	ctx context.Context,
	athlete *models.AthleteProfile,
	limit int,
) ([]models.BusinessWithScore, error) {
	businesses, err := s.businessRepo.ListComplete(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.BusinessWithScore, 0, len(businesses))
	for _, business := range businesses {
		matched = append(matched, models.BusinessWithScore{
			BusinessProfile: business,
			MatchScore:      scoreBusinessForAthlete(athlete, &business),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].MatchScore == matched[j].MatchScore {
			return boolValue(matched[i].IsVerified) && !boolValue(matched[j].IsVerified)
		}
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func scoreBusinessForAthlete(athlete *models.AthleteProfile, business *models.BusinessProfile) int {
	score := 0

	shared := overlapCount(athleteValues(athlete), sliceValue(business.BrandValues))
	if shared > 2 {
		shared = 2
	}
	score += 20 * shared

	if overlapCount(athleteAudience(athlete), sliceValue(business.TargetAge)) > 0 {
		score += 20
	}
	if regionsOverlap(athleteRegions(athlete), sliceValue(business.TargetRegions)) {
		score += 15
	}
	if budget := budgetCeiling(business.BudgetRange); budget > 0 && floatValue(athleteMinDeal(athlete)) <= budget {
		score += 15
	}
	if boolValue(business.IsVerified) {
		score += 10
	}

	return score
}

func scoreAthleteForBusiness(business *models.BusinessProfile, athlete *models.AthleteProfile) int {
	score := 0

	shared := overlapCount(sliceValue(business.BrandValues), athleteValues(athlete))
	if shared > 2 {
		shared = 2
	}
	score += 20 * shared

	if overlapCount(sliceValue(business.TargetAge), athleteAudience(athlete)) > 0 {
		score += 20
	}
	if regionsOverlap(sliceValue(business.TargetRegions), athleteRegions(athlete)) {
		score += 15
	}
	if intValue(athlete.FollowerCount) >= 10000 {
		score += 15
	}
	if floatValue(athlete.EngagementRate) >= 3 {
		score += 10
	}
	if platform := stringValue(athlete.PrimaryPlatform); platform != "" && containsNormalized(sliceValue(business.Channels), platform) {
		score += 10
	}
	if budget := budgetCeiling(business.BudgetRange); budget > 0 && floatValue(athleteMinDeal(athlete)) <= budget {
		score += 10
	}

	return score
}

// budgetCeiling maps a budget range option to the largest deal it covers.
var budgetCeilings = map[string]float64{
	"under_1k": 1000,
	"1k_5k":    5000,
	"5k_20k":   20000,
	"20k_100k": 100000,
	"100k+":    1 << 30,
}

func budgetCeiling(budgetRange *string) float64 {
	if budgetRange == nil {
		return 0
	}
	return budgetCeilings[normalize(*budgetRange)]
}

func overlapCount(left, right []string) int {
	rightSet := make(map[string]struct{}, len(right))
	for _, value := range right {
		if key := normalize(value); key != "" {
			rightSet[key] = struct{}{}
		}
	}

	count := 0
	for _, value := range left {
		if _, ok := rightSet[normalize(value)]; ok {
			count++
		}
	}
	return count
}

func regionsOverlap(left, right []string) bool {
	if containsNormalized(left, "national") || containsNormalized(right, "national") {
		return len(left) > 0 && len(right) > 0
	}
	return overlapCount(left, right) > 0
}

func containsNormalized(values []string, target string) bool {
	key := normalize(target)
	for _, value := range values {
		if normalize(value) == key {
			return true
		}
	}
	return false
}

func normalize(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}

func athleteValues(athlete *models.AthleteProfile) []string {
	if athlete == nil {
		return nil
	}
	return sliceValue(athlete.BrandValues)
}

func athleteAudience(athlete *models.AthleteProfile) []string {
	if athlete == nil {
		return nil
	}
	return sliceValue(athlete.AudienceAge)
}

func athleteRegions(athlete *models.AthleteProfile) []string {
	if athlete == nil {
		return nil
	}
	return sliceValue(athlete.AudienceRegions)
}

func athleteMinDeal(athlete *models.AthleteProfile) *float64 {
	if athlete == nil {
		return nil
	}
	return athlete.MinDealValue
}

func sliceValue(values *[]string) []string {
	if values == nil {
		return nil
	}
	return *values
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func floatValue(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func boolValue(value *bool) bool {
	if value == nil {
		return false
	}
	return *value
}
