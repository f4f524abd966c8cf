package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

const maxImageSizeBytes = 5 * 1024 * 1024

type ProfileHandler struct {
	profileService      *services.ProfileService
	athleteProfileRepo  athleteProfileStore
	businessProfileRepo businessProfileStore
	storageService      services.StorageService
}

type athleteProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error)
}

type businessProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.BusinessProfile, error)
}

func NewProfileHandler(
	profileService *services.ProfileService,
	athleteProfileRepo athleteProfileStore,
	businessProfileRepo businessProfileStore,
	storageService services.StorageService,
) *ProfileHandler {
	return &ProfileHandler{
		profileService:      profileService,
		athleteProfileRepo:  athleteProfileRepo,
		businessProfileRepo: businessProfileRepo,
		storageService:      storageService,
	}
}

type updateAthleteProfileRequest struct {
	FullName         *string   `json:"full_name"`
	Phone            *string   `json:"phone"`
	ZipCode          *string   `json:"zip_code"`
	School           *string   `json:"school"`
	Sport            *string   `json:"sport"`
	Division         *string   `json:"division"`
	GraduationYear   *string   `json:"graduation_year"`
	PrimaryPlatform  *string   `json:"primary_platform"`
	SocialHandle     *string   `json:"social_handle"`
	FollowerCount    *int      `json:"follower_count"`
	BrandValues      *[]string `json:"brand_values"`
	MissionStatement *string   `json:"mission_statement"`
	Goals            *[]string `json:"goals"`
	MinDealValue     *float64  `json:"min_deal_value"`
}

type updateBusinessProfileRequest struct {
	CompanyName      *string   `json:"company_name"`
	ContactName      *string   `json:"contact_name"`
	Phone            *string   `json:"phone"`
	ZipCode          *string   `json:"zip_code"`
	Industry         *string   `json:"industry"`
	Website          *string   `json:"website"`
	CompanySize      *string   `json:"company_size"`
	BrandValues      *[]string `json:"brand_values"`
	MissionStatement *string   `json:"mission_statement"`
	Objectives       *[]string `json:"objectives"`
	BudgetRange      *string   `json:"budget_range"`
}

func (h *ProfileHandler) UpdateAthleteProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "athlete" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateAthleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateAthleteProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profileService.UpdateAthleteProfile(c.Context(), userID, repository.UpdateAthleteProfileInput{
		FullName:         req.FullName,
		Phone:            req.Phone,
		ZipCode:          req.ZipCode,
		School:           req.School,
		Sport:            req.Sport,
		Division:         req.Division,
		GraduationYear:   req.GraduationYear,
		PrimaryPlatform:  req.PrimaryPlatform,
		SocialHandle:     req.SocialHandle,
		FollowerCount:    req.FollowerCount,
		BrandValues:      req.BrandValues,
		MissionStatement: req.MissionStatement,
		Goals:            req.Goals,
		MinDealValue:     req.MinDealValue,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *ProfileHandler) UpdateBusinessProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "business" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateBusinessProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateBusinessProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.profileService.UpdateBusinessProfile(c.Context(), userID, repository.UpdateBusinessProfileInput{
		CompanyName:      req.CompanyName,
		ContactName:      req.ContactName,
		Phone:            req.Phone,
		ZipCode:          req.ZipCode,
		Industry:         req.Industry,
		Website:          req.Website,
		CompanySize:      req.CompanySize,
		BrandValues:      req.BrandValues,
		MissionStatement: req.MissionStatement,
		Objectives:       req.Objectives,
		BudgetRange:      req.BudgetRange,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *ProfileHandler) GetAthleteProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "athlete" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.athleteProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *ProfileHandler) GetBusinessProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "business" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.businessProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

// UploadAthleteAvatar replaces the athlete's avatar image.
func (h *ProfileHandler) UploadAthleteAvatar(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "athlete" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	file, filename, status, message := openImageUpload(c, "avatar")
	if status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
	defer file.Close()

	avatarURL, err := h.storageService.UploadFile(c.Context(), file, fmt.Sprintf("%d-%s", userID, filename), "athletes/avatars")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload avatar"})
	}

	currentProfile, err := h.athleteProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	if currentProfile.AvatarURL != nil && *currentProfile.AvatarURL != "" && *currentProfile.AvatarURL != avatarURL {
		_ = h.storageService.DeleteFile(c.Context(), *currentProfile.AvatarURL)
	}

	profile, err := h.profileService.UpdateAthleteProfile(c.Context(), userID, repository.UpdateAthleteProfileInput{
		AvatarURL: &avatarURL,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"avatar_url": avatarURL,
		"profile":    profile,
	})
}

// UploadBusinessLogo replaces the business's logo image.
func (h *ProfileHandler) UploadBusinessLogo(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "business" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	file, filename, status, message := openImageUpload(c, "logo")
	if status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": message})
	}
	defer file.Close()

	logoURL, err := h.storageService.UploadFile(c.Context(), file, fmt.Sprintf("%d-%s", userID, filename), "businesses/logos")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload logo"})
	}

	currentProfile, err := h.businessProfileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	if currentProfile.LogoURL != nil && *currentProfile.LogoURL != "" && *currentProfile.LogoURL != logoURL {
		_ = h.storageService.DeleteFile(c.Context(), *currentProfile.LogoURL)
	}

	profile, err := h.profileService.UpdateBusinessProfile(c.Context(), userID, repository.UpdateBusinessProfileInput{
		LogoURL: &logoURL,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"logo_url": logoURL,
		"profile":  profile,
	})
}

// openImageUpload validates and opens the uploaded image from the form. A
// non-zero status means the caller should respond with that status and
// message instead of proceeding.
func openImageUpload(c *fiber.Ctx, field string) (multipart.File, string, int, string) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", fiber.StatusBadRequest, field + " file is required"
	}
	if fileHeader.Size <= 0 {
		return nil, "", fiber.StatusBadRequest, field + " file is empty"
	}
	if fileHeader.Size > maxImageSizeBytes {
		return nil, "", fiber.StatusBadRequest, field + " file exceeds 5MB limit"
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return nil, "", fiber.StatusBadRequest, field + " must be a jpg, jpeg, png, or webp file"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fiber.StatusInternalServerError, "Failed to open " + field + " file"
	}

	return file, fmt.Sprintf("%d%s", time.Now().UnixNano(), ext), 0, ""
}

func parseProfileUserID(c *fiber.Ctx) (int64, error) {
	userIDValue := c.Locals("user_id")
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}
