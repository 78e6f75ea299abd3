package handlers

import (
	"github.com/SemiSummit/registration_service/internal/api/rest/middleware"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/SemiSummit/registration_service/internal/helper"
	"github.com/SemiSummit/registration_service/internal/helper/utils"
	"github.com/SemiSummit/registration_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

func (h *UserHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	user := api.Group("/users")

	// public
	user.Post("/register", h.Register)
	user.Post("/login", h.Login)
	user.Post("/forgot-password", h.ForgotPassword)
	user.Post("/reset-password", h.SetPassword)

	// authenticated
	user.Get("/me", middleware.AuthMiddleware(h.auth), h.Me)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{
		"id":                  user.ID,
		"email":               user.Email,
		"verification_status": user.VerificationStatus,
	})
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"token":               token,
		"role":                user.Role,
		"verification_status": user.VerificationStatus,
	})
}

func (h *UserHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ForgotPasswordRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if err := h.svc.ForgotPassword(requestBody.Email); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password reset link sent")
}

func (h *UserHandler) SetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.SetPasswordRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Token == "" || requestBody.NewPassword == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid input")
	}

	if err := h.svc.SetPassword(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password reset successfully")
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.GetProfile(claims.UserID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "user not found")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}
