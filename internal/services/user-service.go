package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/SemiSummit/registration_service/internal/domain"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/SemiSummit/registration_service/internal/helper"
	"github.com/SemiSummit/registration_service/internal/helper/utils"
	"github.com/SemiSummit/registration_service/internal/interfaces"
	"github.com/SemiSummit/registration_service/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService interface {
	Register(input dto.RegisterRequest) (*domain.User, error)
	Login(input dto.UserLogin) (*domain.User, error)
	ForgotPassword(email string) error
	SetPassword(input dto.SetPasswordRequest) error
	GetProfile(userID uint) (*domain.User, error)
}

type userService struct {
	repo            repository.UserRepository
	auth            helper.Auth
	mailer          interfaces.Mailer
	producer        interfaces.ProducerHandler
	frontendBaseURL string
	logger          *zap.Logger
}

func NewUserService(
	repo repository.UserRepository,
	auth helper.Auth,
	mailer interfaces.Mailer,
	producer interfaces.ProducerHandler,
	frontendBaseURL string,
	logger *zap.Logger,
) UserService {
	return &userService{
		repo:            repo,
		auth:            auth,
		mailer:          mailer,
		producer:        producer,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		logger:          logger,
	}
}

// Register creates a pending participant account. No password is taken:
// credentials arrive by mail once payment verification approves the account.
func (u *userService) Register(input dto.RegisterRequest) (*domain.User, error) {
	email := utils.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)

	if email == "" || name == "" || phone == "" {
		return nil, errors.New("invalid inputs")
	}
	if !strings.Contains(email, "@") {
		return nil, errors.New("invalid email")
	}

	existing, err := u.repo.FindUserByEmail(email)
	if err == nil && existing != nil && existing.ID != 0 {
		return nil, errors.New("email already exists")
	}

	newUser := &domain.User{
		Email:              email,
		Name:               name,
		Phone:              phone,
		College:            strings.TrimSpace(input.College),
		Department:         strings.TrimSpace(input.Department),
		Role:               domain.RoleParticipant,
		VerificationStatus: domain.VerificationPending,
		PaymentStatus:      domain.PaymentPending,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		if helper.IsDuplicateEmail(err) {
			return nil, errors.New("email already exists")
		}
		return nil, errors.New("failed to create user")
	}

	if u.producer != nil {
		payload := fmt.Sprintf(
			`{"user_id":%d,"email":"%s","name":"%s"}`,
			usr.ID, usr.Email, usr.Name,
		)
		_ = u.producer.PublishMessage([]byte("user.registered"), []byte(payload))
	}

	return usr, nil
}

func (u *userService) Login(input dto.UserLogin) (*domain.User, error) {
	email := utils.NormalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	if email == "" || password == "" {
		return nil, errors.New("invalid email or password")
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return nil, errors.New("invalid email or password")
	}

	switch user.VerificationStatus {
	case domain.VerificationApproved:
		// credentials exist only for approved accounts
	case domain.VerificationRejected:
		return nil, errors.New("registration was rejected")
	default:
		return nil, errors.New("registration is pending verification")
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return user, nil
}

func (u *userService) ForgotPassword(email string) error {
	email = utils.NormalizeEmail(email)

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil {
		return errors.New("user not found")
	}

	if user.VerificationStatus != domain.VerificationApproved {
		return errors.New("account has no credentials yet")
	}

	plain, err := utils.RandomToken(32)
	if err != nil {
		return errors.New("failed to generate reset token")
	}

	hash := utils.Sha256Hex(plain)
	exp := time.Now().Add(30 * time.Minute)

	user.ResetTokenHash = hash
	user.ResetTokenExpiresAt = &exp
	if err := u.repo.SaveUser(user); err != nil {
		return errors.New("failed to save user")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s",
		u.frontendBaseURL, url.QueryEscape(plain))

	if !u.mailer.SendPasswordReset(user.Email, user.Name, resetLink) {
		u.logger.Warn("password reset email not sent",
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email))
	}

	if u.producer != nil {
		payload := fmt.Sprintf(`{"user_id":%d,"email":"%s","expires_at":"%s"}`,
			user.ID, user.Email, exp.Format(time.RFC3339),
		)
		_ = u.producer.PublishMessage([]byte("user.reset_password"), []byte(payload))
	}

	return nil
}

func (u *userService) SetPassword(input dto.SetPasswordRequest) error {
	token := strings.TrimSpace(input.Token)
	newPassword := strings.TrimSpace(input.NewPassword)

	if token == "" || newPassword == "" {
		return errors.New("invalid input")
	}
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	hash := utils.Sha256Hex(token)
	user, err := u.repo.FindUserByResetToken(hash)
	if err != nil || user == nil {
		return errors.New("invalid or expired token")
	}

	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return errors.New("invalid or expired token")
	}

	hashedPassword, err := u.auth.HashPassword(newPassword)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.PasswordHash = hashedPassword
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil

	return u.repo.SaveUser(user)
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}
