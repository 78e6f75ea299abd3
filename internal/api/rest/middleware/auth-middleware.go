package middleware

import (
	"strings"

	"github.com/SemiSummit/registration_service/internal/domain"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/SemiSummit/registration_service/internal/helper"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func FacultyOnly() fiber.Handler {
	return requireRole("faculty only", domain.RoleFaculty)
}

func CoordinatorOrFaculty() fiber.Handler {
	return requireRole("coordinator or faculty only", domain.RoleCoordinator, domain.RoleFaculty)
}

func requireRole(msg string, allowed ...domain.Role) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, ok := ctx.Locals("userID").(uint)
		if !ok || userID == 0 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		claims, ok := ctx.Locals("user").(dto.AuthResponse)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		for _, a := range allowed {
			if domain.Role(claims.Role) == a {
				return ctx.Next()
			}
		}

		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": msg,
		})
	}
}
