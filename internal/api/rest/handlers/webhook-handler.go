package handlers

import (
	"errors"

	"github.com/SemiSummit/registration_service/internal/helper/utils"
	"github.com/SemiSummit/registration_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

const signatureHeader = "X-Razorpay-Signature"

type WebhookHandler struct {
	svc services.VerificationService
}

func NewWebhookHandler(svc services.VerificationService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

func (h *WebhookHandler) SetupRoutes(app *fiber.App) {
	// unauthenticated: the provider proves itself via the signature header
	app.Post("/api/verification/webhook", h.Handle)
}

func (h *WebhookHandler) Handle(ctx *fiber.Ctx) error {
	// The signature covers the exact byte sequence, so the body must be
	// taken raw, never re-serialized from a parsed form.
	rawBody := ctx.Body()
	signature := ctx.Get(signatureHeader)

	ack, err := h.svc.HandleWebhook(ctx.Context(), rawBody, signature)
	if err != nil {
		if errors.Is(err, services.ErrSignatureMismatch) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid webhook signature")
		}
		if errors.Is(err, services.ErrValidation) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "malformed webhook payload")
		}
		// Never bounce the provider into a retry storm over an internal
		// fault; the service already logged it.
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}

	return ctx.Status(fiber.StatusOK).JSON(ack)
}
