package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/models"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type campaignApplicationService interface {
	CreateCampaign(ctx context.Context, businessID int64, input services.CreateCampaignInput) (*models.Campaign, error)
	ListCampaigns(ctx context.Context, actorID int64, role string) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, actorID int64, role string, campaignID int64) (*models.Campaign, error)
	UpdateStatus(ctx context.Context, actorID int64, role string, campaignID int64, requestedStatus string) (*models.Campaign, error)
}

type CampaignHandler struct {
	service campaignApplicationService
}

func NewCampaignHandler(service campaignApplicationService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

type createCampaignRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Bundles     []string `json:"bundles"`
	BudgetRange *string  `json:"budget_range"`
}

type updateCampaignStatusRequest struct {
	Status string `json:"status"`
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "business" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	campaign, err := h.service.CreateCampaign(c.Context(), userID, services.CreateCampaignInput{
		Title:       req.Title,
		Description: req.Description,
		Bundles:     req.Bundles,
		BudgetRange: req.BudgetRange,
	})
	if err != nil {
		return mapCampaignError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"campaign": campaign})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	campaigns, err := h.service.ListCampaigns(c.Context(), userID, role)
	if err != nil {
		return mapCampaignError(c, err)
	}

	return c.JSON(fiber.Map{"campaigns": campaigns})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	campaignID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || campaignID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid campaign id"})
	}

	campaign, err := h.service.GetCampaign(c.Context(), userID, role, campaignID)
	if err != nil {
		return mapCampaignError(c, err)
	}

	return c.JSON(fiber.Map{"campaign": campaign})
}

func (h *CampaignHandler) UpdateCampaignStatus(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	campaignID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || campaignID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid campaign id"})
	}

	var req updateCampaignStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	campaign, err := h.service.UpdateStatus(c.Context(), userID, role, campaignID, req.Status)
	if err != nil {
		return mapCampaignError(c, err)
	}

	return c.JSON(fiber.Map{"campaign": campaign})
}

func mapCampaignError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid campaign status"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Invalid campaign status transition"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Campaign not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process campaign request"})
	}
}
