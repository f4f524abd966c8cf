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

type widgetApplicationService interface {
	ListWidgets(ctx context.Context, userID int64) ([]models.Widget, error)
	CreateWidget(ctx context.Context, userID int64, req services.CreateWidgetRequest) (*models.Widget, error)
	UpdateWidget(ctx context.Context, userID, widgetID int64, req services.UpdateWidgetRequest) (*models.Widget, error)
	DeleteWidget(ctx context.Context, userID, widgetID int64) error
	ReorderWidgets(ctx context.Context, userID int64, orderedIDs []int64) error
}

type WidgetHandler struct {
	service widgetApplicationService
}

func NewWidgetHandler(service widgetApplicationService) *WidgetHandler {
	return &WidgetHandler{service: service}
}

type createWidgetRequest struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Size  string `json:"size"`
}

type updateWidgetRequest struct {
	Title *string `json:"title"`
	Size  *string `json:"size"`
}

type reorderWidgetsRequest struct {
	WidgetIDs []int64 `json:"widget_ids"`
}

func (h *WidgetHandler) ListWidgets(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	widgets, err := h.service.ListWidgets(c.Context(), userID)
	if err != nil {
		return mapWidgetError(c, err)
	}

	return c.JSON(fiber.Map{"widgets": widgets})
}

func (h *WidgetHandler) CreateWidget(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createWidgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	widget, err := h.service.CreateWidget(c.Context(), userID, services.CreateWidgetRequest{
		Type:  req.Type,
		Title: req.Title,
		Size:  req.Size,
	})
	if err != nil {
		return mapWidgetError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"widget": widget})
}

func (h *WidgetHandler) UpdateWidget(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	widgetID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || widgetID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid widget id"})
	}

	var req updateWidgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	widget, err := h.service.UpdateWidget(c.Context(), userID, widgetID, services.UpdateWidgetRequest{
		Title: req.Title,
		Size:  req.Size,
	})
	if err != nil {
		return mapWidgetError(c, err)
	}

	return c.JSON(fiber.Map{"widget": widget})
}

func (h *WidgetHandler) DeleteWidget(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	widgetID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || widgetID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid widget id"})
	}

	if err := h.service.DeleteWidget(c.Context(), userID, widgetID); err != nil {
		return mapWidgetError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WidgetHandler) ReorderWidgets(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req reorderWidgetsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.ReorderWidgets(c.Context(), userID, req.WidgetIDs); err != nil {
		return mapWidgetError(c, err)
	}

	widgets, err := h.service.ListWidgets(c.Context(), userID)
	if err != nil {
		return mapWidgetError(c, err)
	}

	return c.JSON(fiber.Map{"widgets": widgets})
}

func mapWidgetError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrWidgetLimitReached):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Widget limit reached"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Widget not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process widget request"})
	}
}
