package handlers

import (
	"strconv"

	"github.com/SemiSummit/registration_service/internal/api/rest/middleware"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/SemiSummit/registration_service/internal/helper"
	"github.com/SemiSummit/registration_service/internal/helper/utils"
	"github.com/SemiSummit/registration_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnnouncementHandler struct {
	svc  services.AnnouncementService
	auth helper.Auth
}

func NewAnnouncementHandler(svc services.AnnouncementService, auth helper.Auth) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc, auth: auth}
}

func (h *AnnouncementHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	ann := api.Group("/announcements", middleware.AuthMiddleware(h.auth))

	ann.Get("/", h.List)

	staff := middleware.CoordinatorOrFaculty()
	ann.Post("/", staff, h.Create)
	ann.Put("/:id", staff, h.Update)
	ann.Delete("/:id", staff, h.Delete)
}

func (h *AnnouncementHandler) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	out, err := h.svc.List(limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "something went wrong")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *AnnouncementHandler) Create(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var input dto.AnnouncementInput
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	a, err := h.svc.Create(claims.UserID, input)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, a)
}

func (h *AnnouncementHandler) Update(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid announcement id")
	}

	var input dto.AnnouncementInput
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	a, err := h.svc.Update(uint(id), input)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, a)
}

func (h *AnnouncementHandler) Delete(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid announcement id")
	}

	if err := h.svc.Delete(uint(id)); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "announcement deleted")
}
