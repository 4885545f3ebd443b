package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"gameacct/internal/services"
)

// ProvisionHandler handles HTTP requests for account provisioning. It
// owns no business rules: it collects the form fields, hands them to
// the provisioning service, and renders the result as a status code and
// a user-facing message.
type ProvisionHandler struct {
	service  *services.ProvisioningService
	validate *validator.Validate
}

// NewProvisionHandler creates a new ProvisionHandler.
func NewProvisionHandler(service *services.ProvisioningService) *ProvisionHandler {
	return &ProvisionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the provisioning routes with the Fiber app.
func (h *ProvisionHandler) RegisterRoutes(router fiber.Router) {
	accountRoutes := router.Group("/account")
	accountRoutes.Post("/register", h.HandleRegister)
	accountRoutes.Post("/change-password", h.HandleChangePassword)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// HandleRegister handles new account registration.
func (h *ProvisionHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	principalID := principalFromContext(c)
	if principalID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing principal",
		})
	}

	result := h.service.Register(req.Username, req.Password, req.ConfirmPassword, principalID)
	return renderResult(c, result, fiber.StatusCreated)
}

// HandleChangePassword handles a password rotation for an owned account.
func (h *ProvisionHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing change password request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	principalID := principalFromContext(c)
	if principalID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing principal",
		})
	}

	result := h.service.ChangePassword(req.Username, req.NewPassword, req.ConfirmPassword, principalID)
	return renderResult(c, result, fiber.StatusOK)
}

// principalFromContext reads the principal id stored by the
// PrincipalRequired middleware.
func principalFromContext(c *fiber.Ctx) string {
	principalID, _ := c.Locals("principal_id").(string)
	return principalID
}

// validationErrorResponse renders validator errors as per-field messages.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// renderResult maps a provisioning result onto an HTTP status. Every
// branch returns only the service's caller-safe message.
func renderResult(c *fiber.Ctx, result services.Result, successStatus int) error {
	status := successStatus
	switch result.Status {
	case services.StatusSuccess:
	case services.StatusValidationError:
		status = fiber.StatusBadRequest
	case services.StatusConflict:
		status = fiber.StatusConflict
	case services.StatusQuotaExceeded:
		status = fiber.StatusTooManyRequests
	case services.StatusNotFoundOrForbidden:
		status = fiber.StatusNotFound
	case services.StatusPartialFailure:
		status = fiber.StatusBadGateway
	case services.StatusTransientError:
		status = fiber.StatusServiceUnavailable
	default:
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"message": result.Message,
	})
}
