package handlers

import (
	"errors"
	"strconv"

	"github.com/SemiSummit/registration_service/internal/api/rest/middleware"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/SemiSummit/registration_service/internal/helper"
	"github.com/SemiSummit/registration_service/internal/helper/utils"
	"github.com/SemiSummit/registration_service/internal/services"
	pkgutils "github.com/SemiSummit/registration_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// receipts above this size are rejected before parsing
const maxReceiptSize = 10 * 1024 * 1024

type VerificationHandler struct {
	svc  services.VerificationService
	auth helper.Auth
}

func NewVerificationHandler(svc services.VerificationService, auth helper.Auth) *VerificationHandler {
	return &VerificationHandler{svc: svc, auth: auth}
}

func (h *VerificationHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	ver := api.Group("/verification")

	// public: the participant is not logged in yet at this point
	ver.Post("/receipt", h.SubmitReceipt)

	// Auth is attached per route, never as prefix middleware: the provider
	// webhook lives under the same prefix and must stay unauthenticated.
	authed := middleware.AuthMiddleware(h.auth)
	facultyOnly := middleware.FacultyOnly()
	ver.Get("/pending", authed, facultyOnly, h.ListPending)
	ver.Put("/:userID/approve", authed, facultyOnly, h.Approve)
	ver.Put("/:userID/reject", authed, facultyOnly, h.Reject)
}

func (h *VerificationHandler) SubmitReceipt(ctx *fiber.Ctx) error {
	paymentID := ctx.FormValue("paymentId")
	userIDStr := ctx.FormValue("userId")

	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil || userID == 0 || paymentID == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "paymentId, userId and receipt file are required")
	}

	file, err := ctx.FormFile("receipt")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "paymentId, userId and receipt file are required")
	}
	if file.Size > maxReceiptSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "receipt too large (max 10MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	body, err := pkgutils.ReadAllLimit(f, maxReceiptSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "receipt too large (max 10MB)")
	}

	resp, err := h.svc.VerifyReceipt(ctx.Context(), uint(userID), paymentID, file.Filename, body)
	if err != nil {
		return respondVerificationError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func (h *VerificationHandler) Approve(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := strconv.ParseUint(ctx.Params("userID"), 10, 32)
	if err != nil || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	emailSent, err := h.svc.Approve(ctx.Context(), uint(userID), claims.UserID)
	if err != nil {
		return respondVerificationError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message":    "user approved",
		"email_sent": emailSent,
	})
}

func (h *VerificationHandler) Reject(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := strconv.ParseUint(ctx.Params("userID"), 10, 32)
	if err != nil || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	var requestBody dto.RejectRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Reason == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "rejection reason is required")
	}

	emailSent, err := h.svc.Reject(ctx.Context(), uint(userID), claims.UserID, requestBody.Reason)
	if err != nil {
		return respondVerificationError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message":    "user rejected",
		"email_sent": emailSent,
	})
}

func (h *VerificationHandler) ListPending(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	pending, err := h.svc.ListPending(limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "something went wrong")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, pending)
}

// respondVerificationError maps business errors onto the documented status
// codes; anything unexpected becomes a generic 500 with no internal detail.
func respondVerificationError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrPaymentRefTaken),
		errors.Is(err, services.ErrDocumentUnreadable),
		errors.Is(err, services.ErrPaymentIDNotFound):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	default:
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "something went wrong")
	}
}
