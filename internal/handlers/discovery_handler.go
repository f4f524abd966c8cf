package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type athleteDiscoveryRepository interface {
	List(ctx context.Context, filter repository.AthleteListFilter) ([]models.AthleteProfile, int, error)
	GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error)
}

type businessDiscoveryRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.BusinessProfile, error)
}

type profileMatcher interface {
	GetMatchedAthletes(ctx context.Context, business *models.BusinessProfile, limit int) ([]models.AthleteWithScore, error)
	GetMatchedBusinesses(ctx context.Context, athlete *models.AthleteProfile, limit int) ([]models.BusinessWithScore, error)
}

type DiscoveryHandler struct {
	athleteRepo     athleteDiscoveryRepository
	businessRepo    businessDiscoveryRepository
	matchingService profileMatcher
}

func NewDiscoveryHandler(
	athleteRepo athleteDiscoveryRepository,
	businessRepo businessDiscoveryRepository,
	matchingService profileMatcher,
) *DiscoveryHandler {
	return &DiscoveryHandler{
		athleteRepo:     athleteRepo,
		businessRepo:    businessRepo,
		matchingService: matchingService,
	}
}

func (h *DiscoveryHandler) ListAthletes(c *fiber.Ctx) error {
	page, limit := parsePageParams(c)

	minFollowers, err := parseNonNegativeInt(c.Query("min_followers"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_followers must be a valid non-negative integer"})
	}
	maxDealValue, err := parseNonNegativeFloat(c.Query("max_deal_value"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "max_deal_value must be a valid non-negative number"})
	}

	athletes, total, err := h.athleteRepo.List(c.Context(), repository.AthleteListFilter{
		Sport:        strings.TrimSpace(c.Query("sport")),
		Division:     strings.TrimSpace(c.Query("division")),
		MinFollowers: minFollowers,
		MaxDealValue: maxDealValue,
		Offset:       (page - 1) * limit,
		Limit:        limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch athletes"})
	}

	response := make([]models.AthleteListResponse, 0, len(athletes))
	for _, athlete := range athletes {
		response = append(response, buildAthleteListResponse(athlete, 0))
	}

	return c.JSON(fiber.Map{
		"athletes":   response,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

// GetRecommendedAthletes returns scored athletes for the authenticated
// business, best match first.
func (h *DiscoveryHandler) GetRecommendedAthletes(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "business" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parseListLimit(c)

	businessProfile, err := h.businessRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch business profile"})
	}

	athletes, err := h.matchingService.GetMatchedAthletes(c.Context(), businessProfile, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch recommended athletes"})
	}

	response := make([]models.AthleteListResponse, 0, len(athletes))
	for _, athlete := range athletes {
		response = append(response, buildAthleteListResponse(athlete.AthleteProfile, athlete.MatchScore))
	}

	return c.JSON(fiber.Map{"athletes": response})
}

// GetRecommendedBusinesses returns scored businesses for the authenticated
// athlete, best match first.
func (h *DiscoveryHandler) GetRecommendedBusinesses(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "athlete" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parseListLimit(c)

	athleteProfile, err := h.athleteRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch athlete profile"})
	}

	businesses, err := h.matchingService.GetMatchedBusinesses(c.Context(), athleteProfile, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch recommended businesses"})
	}

	return c.JSON(fiber.Map{"businesses": businesses})
}

func (h *DiscoveryHandler) GetAthleteDetail(c *fiber.Ctx) error {
	athleteID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || athleteID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete id"})
	}

	athlete, err := h.athleteRepo.GetByUserID(c.Context(), athleteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Athlete not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch athlete"})
	}

	return c.JSON(fiber.Map{"athlete": athlete})
}

func buildAthleteListResponse(athlete models.AthleteProfile, matchScore int) models.AthleteListResponse {
	response := models.AthleteListResponse{
		UserID:          athlete.UserID,
		FullName:        athlete.FullName,
		AvatarURL:       athlete.AvatarURL,
		School:          athlete.School,
		Sport:           athlete.Sport,
		Division:        athlete.Division,
		FollowerCount:   athlete.FollowerCount,
		EngagementRate:  athlete.EngagementRate,
		BrandValues:     stringSliceValue(athlete.BrandValues),
		PrimaryPlatform: athlete.PrimaryPlatform,
	}
	if matchScore > 0 {
		response.MatchScore = matchScore
	}
	return response
}

func parseNonNegativeInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errInvalidNumber
	}
	return value, nil
}

func parseNonNegativeFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0, errInvalidNumber
	}
	return value, nil
}

var errInvalidNumber = errors.New("invalid number")

func stringSliceValue(value *[]string) []string {
	if value == nil {
		return []string{}
	}
	return *value
}
