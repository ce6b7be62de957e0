package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/workwear/internal/services"
	"github.com/example/workwear/internal/utils"
)

// ContactNotifier delivers contact form submissions to the shop staff.
type ContactNotifier interface {
	Configured() bool
	NotifyContact(ctx context.Context, req services.ContactRequest) error
}

// ContactHandler accepts the storefront contact form.
type ContactHandler struct {
	notifier ContactNotifier
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(notifier ContactNotifier) *ContactHandler {
	return &ContactHandler{notifier: notifier}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=200" msg:"Name, phone and message are required"`
	Phone   string `json:"phone" validate:"required,notblank,max=50" msg:"Name, phone and message are required"`
	Message string `json:"message" validate:"required,notblank,max=4000" msg:"Name, phone and message are required"`
}

// Submit forwards the contact form to Telegram.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	if !h.notifier.Configured() {
		log.Println("[Contact] Telegram configuration is missing")
		return fiber.NewError(fiber.StatusInternalServerError, "Telegram configuration is missing. Please check environment variables.")
	}

	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Name, phone and message are required")
	}
	if msg := utils.FirstValidationError(&req); msg != "" {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	err := h.notifier.NotifyContact(c.UserContext(), services.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
		SentAt:  time.Now(),
	})
	if errors.Is(err, services.ErrTelegramNotConfigured) {
		return serverError("Contact", err, "Telegram configuration is missing. Please check environment variables.")
	}
	if err != nil {
		return serverError("Contact", err, "Failed to send message to Telegram. Please try again later.")
	}

	return c.JSON(fiber.Map{"success": true})
}

// MethodNotAllowed answers non-POST requests to the contact endpoint.
func (h *ContactHandler) MethodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"error":  "Method not allowed. This endpoint only accepts POST requests.",
		"status": "error",
	})
}
