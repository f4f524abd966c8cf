package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/services"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/wizard"
	"github.com/gofiber/fiber/v2"
)

type onboardingFlow interface {
	StartSession(ctx context.Context, userType string) (*wizard.State, error)
	GetSession(ctx context.Context, sessionID string) (*wizard.State, error)
	SelectUserType(ctx context.Context, sessionID, userType string) (*wizard.State, error)
	SetFields(ctx context.Context, sessionID string, section wizard.SectionKey, values map[string]any) (*wizard.State, error)
	AdvanceStep(ctx context.Context, sessionID string) (*wizard.State, error)
	StepBack(ctx context.Context, sessionID string) (*wizard.State, error)
	Submit(ctx context.Context, input services.SubmitInput) (*services.SubmissionResult, map[string]string, error)
}

type OnboardingHandler struct {
	onboarding onboardingFlow
}

func NewOnboardingHandler(onboarding onboardingFlow) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

type startSessionRequest struct {
	UserType string `json:"userType"`
}

// StartSession opens a new wizard session. Clients that already know the
// user's type skip the welcome and selection steps.
func (h *OnboardingHandler) StartSession(c *fiber.Ctx) error {
	var req startSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	state, err := h.onboarding.StartSession(c.Context(), req.UserType)
	if err != nil {
		return mapOnboardingError(c, err)
	}

	response := wizardStateResponse(state)
	response["sessionId"] = state.SessionID
	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *OnboardingHandler) GetSession(c *fiber.Ctx) error {
	state, err := h.onboarding.GetSession(c.Context(), c.Params("sessionId"))
	if err != nil {
		return mapOnboardingError(c, err)
	}
	return c.JSON(wizardStateResponse(state))
}

type selectUserTypeRequest struct {
	UserType string `json:"userType"`
}

func (h *OnboardingHandler) SelectUserType(c *fiber.Ctx) error {
	var req selectUserTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	state, err := h.onboarding.SelectUserType(c.Context(), c.Params("sessionId"), req.UserType)
	if err != nil {
		return mapOnboardingError(c, err)
	}
	return c.JSON(wizardStateResponse(state))
}

type setFieldsRequest struct {
	Section string         `json:"section"`
	Values  map[string]any `json:"values"`
}

func (h *OnboardingHandler) SetFields(c *fiber.Ctx) error {
	var req setFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Section == "" || len(req.Values) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Section and values are required"})
	}

	state, err := h.onboarding.SetFields(c.Context(), c.Params("sessionId"), wizard.SectionKey(req.Section), req.Values)
	if err != nil {
		return mapOnboardingError(c, err)
	}
	return c.JSON(wizardStateResponse(state))
}

func (h *OnboardingHandler) NextStep(c *fiber.Ctx) error {
	state, err := h.onboarding.AdvanceStep(c.Context(), c.Params("sessionId"))
	if err != nil {
		if errors.Is(err, wizard.ErrValidation) {
			response := wizardStateResponse(state)
			response["errors"] = state.Errors
			return c.Status(fiber.StatusUnprocessableEntity).JSON(response)
		}
		return mapOnboardingError(c, err)
	}
	return c.JSON(wizardStateResponse(state))
}

func (h *OnboardingHandler) PreviousStep(c *fiber.Ctx) error {
	state, err := h.onboarding.StepBack(c.Context(), c.Params("sessionId"))
	if err != nil {
		return mapOnboardingError(c, err)
	}
	return c.JSON(wizardStateResponse(state))
}

type submitOnboardingRequest struct {
	SessionID string                    `json:"sessionId"`
	UserType  string                    `json:"userType"`
	FormData  map[string]map[string]any `json:"formData"`
}

// SubmitOnboarding runs the final submission for an authenticated user. The
// user type in the payload must match the caller's role.
func (h *OnboardingHandler) SubmitOnboarding(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req submitOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserType != "" && req.UserType != role {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	result, fieldErrors, err := h.onboarding.Submit(c.Context(), services.SubmitInput{
		SessionID: req.SessionID,
		UserID:    userID,
		UserType:  req.UserType,
		FormData:  req.FormData,
	})
	if err != nil {
		if errors.Is(err, wizard.ErrValidation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Validation failed",
				"errors": fieldErrors,
			})
		}
		return mapOnboardingError(c, err)
	}

	response := fiber.Map{
		"success":         true,
		"userType":        result.UserType,
		"recommendations": result.Recommendations,
	}
	if result.Campaign != nil {
		response["campaign"] = result.Campaign
	}
	return c.JSON(response)
}

func wizardStateResponse(state *wizard.State) fiber.Map {
	response := fiber.Map{
		"sessionId":   state.SessionID,
		"userType":    state.UserType,
		"step":        state.Step.String(),
		"hasControls": state.Step.HasControls(),
		"completed":   state.Completed(),
		"data":        state.Data,
	}
	if section, ok := wizard.SectionForStep(state.Step); ok {
		response["section"] = section
	}
	if fields := wizard.FieldsForStep(state.Step, state.UserType); fields != nil {
		response["fields"] = fields
	}
	if len(state.Errors) > 0 {
		response["errors"] = state.Errors
	}
	return response
}

func mapOnboardingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Onboarding session not found"})
	case errors.Is(err, services.ErrMissingSessionOrType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing session or user type"})
	case errors.Is(err, services.ErrSessionConsumed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Onboarding already submitted for this session"})
	case errors.Is(err, wizard.ErrInvalidUserType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user type"})
	case errors.Is(err, wizard.ErrUserTypeRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Select a user type first"})
	case errors.Is(err, wizard.ErrUserTypeLocked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User type can no longer change"})
	case errors.Is(err, wizard.ErrSectionMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Section does not belong to the current step"})
	case errors.Is(err, wizard.ErrNoPreviousStep):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No previous step"})
	case errors.Is(err, wizard.ErrAwaitingSubmit):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Review step advances through submission"})
	case errors.Is(err, wizard.ErrCompleted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Wizard already completed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Onboarding request failed"})
	}
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	userIDValue := c.Locals("user_id")
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}
