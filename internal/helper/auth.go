package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/SemiSummit/registration_service/internal/domain"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Auth struct {
	Secret string
}

func SetupAuth(s string) Auth {
	return Auth{
		Secret: s,
	}
}

func (a Auth) GenerateToken(userID uint, email string, role domain.Role) (string, error) {
	if userID == 0 || email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now().Unix()
	exp := time.Now().Add(24 * time.Hour).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"iat":     now,
		"exp":     exp,
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}

	return tokenStr, nil
}

func (a Auth) VerifyToken(tokenString string) (dto.AuthResponse, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthResponse{}, errors.New("missing token")
	}

	// support both:
	// - "Bearer <token>"
	// - "<token>"
	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthResponse{}, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return dto.AuthResponse{}, errors.New("token parse error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthResponse{}, errors.New("invalid token claims")
	}

	expAny, ok := claims["exp"]
	if !ok {
		return dto.AuthResponse{}, errors.New("missing expiry")
	}
	expFloat, ok := expAny.(float64)
	if !ok {
		return dto.AuthResponse{}, errors.New("invalid expiry type")
	}
	if float64(time.Now().Unix()) > expFloat {
		return dto.AuthResponse{}, errors.New("token expired")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return dto.AuthResponse{}, errors.New("invalid user_id claim")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return dto.AuthResponse{}, errors.New("invalid email claim")
	}
	role, _ := claims["role"].(string)

	return dto.AuthResponse{
		UserID: uint(userIDFloat),
		Email:  email,
		Role:   role,
		Expiry: expFloat,
	}, nil
}

func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (dto.AuthResponse, error) {
	u := ctx.Locals("user")
	claims, ok := u.(dto.AuthResponse)
	if !ok {
		return dto.AuthResponse{}, errors.New("missing auth user in context")
	}
	return claims, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}
