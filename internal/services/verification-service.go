package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SemiSummit/registration_service/internal/domain"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/SemiSummit/registration_service/internal/helper"
	"github.com/SemiSummit/registration_service/internal/helper/utils"
	"github.com/SemiSummit/registration_service/internal/interfaces"
	"github.com/SemiSummit/registration_service/internal/payments"
	"github.com/SemiSummit/registration_service/internal/receipt"
	"github.com/SemiSummit/registration_service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	webhookPaymentCaptured   = "payment.captured"
	webhookPaymentAuthorized = "payment.authorized"
	webhookPaymentFailed     = "payment.failed"
)

type VerificationService interface {
	// VerifyReceipt is the user-initiated path: a claimed payment id plus an
	// uploaded PDF receipt that must contain it.
	VerifyReceipt(ctx context.Context, userID uint, paymentID, filename string, file []byte) (*dto.ReceiptVerifyResponse, error)

	// HandleWebhook is the provider-initiated path. It errors only for a
	// definite signature mismatch or an unparseable payload; every other
	// outcome is acknowledged so the provider does not retry into a handler
	// with partial side effects.
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) (dto.WebhookAck, error)

	Approve(ctx context.Context, userID, facultyID uint) (emailSent bool, err error)
	Reject(ctx context.Context, userID, facultyID uint, reason string) (emailSent bool, err error)
	ListPending(limit, offset int) ([]dto.PendingUserResponse, error)
}

type verificationService struct {
	repo     repository.UserRepository
	auth     helper.Auth
	parser   interfaces.ReceiptParser
	mailer   interfaces.Mailer
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler

	webhookSecret string
	logger        *zap.Logger
}

func NewVerificationService(
	repo repository.UserRepository,
	auth helper.Auth,
	parser interfaces.ReceiptParser,
	mailer interfaces.Mailer,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
	webhookSecret string,
	logger *zap.Logger,
) VerificationService {
	return &verificationService{
		repo:          repo,
		auth:          auth,
		parser:        parser,
		mailer:        mailer,
		uploader:      uploader,
		producer:      producer,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

func (s *verificationService) VerifyReceipt(
	ctx context.Context,
	userID uint,
	paymentID, filename string,
	file []byte,
) (*dto.ReceiptVerifyResponse, error) {
	paymentID = strings.TrimSpace(paymentID)
	if userID == 0 || paymentID == "" || len(file) == 0 {
		return nil, ErrValidation
	}

	user, err := s.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if user.VerificationStatus != domain.VerificationPending {
		return nil, ErrAlreadyProcessed
	}

	// Duplicate guard runs before anything that could mutate state. The
	// unique index on payment_reference closes the remaining read/write gap
	// on save below.
	if err := s.guardPaymentRef(paymentID); err != nil {
		return nil, err
	}

	text, err := s.parser.ExtractText(file)
	if err != nil {
		return nil, ErrDocumentUnreadable
	}

	if !receipt.ContainsPaymentID(text, paymentID) {
		return nil, ErrPaymentIDNotFound
	}

	var receiptURL string
	if s.uploader != nil {
		name := fmt.Sprintf("receipt_%s", uuid.NewString())
		receiptURL, err = s.uploader.UploadBytes(ctx, "summit/receipts", name, file)
		if err != nil {
			// The receipt already passed textual verification; losing the
			// stored copy is an operator concern, not a reason to fail the
			// participant.
			s.logger.Warn("receipt upload failed",
				zap.Uint("user_id", userID),
				zap.Error(err))
			receiptURL = ""
		}
	}

	tempPassword, err := s.approve(user, paymentID, nil)
	if err != nil {
		return nil, err
	}
	user.ReceiptURL = receiptURL

	if err := s.saveApproved(user); err != nil {
		return nil, err
	}

	s.publishEvent("user.verified", user)
	emailSent := s.mailer.SendCredentials(user.Email, user.Name, tempPassword)
	if !emailSent {
		s.logger.Warn("credentials email not sent",
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email))
	}

	return &dto.ReceiptVerifyResponse{
		Success:   true,
		Message:   "payment verified, credentials issued",
		EmailSent: emailSent,
		User: dto.UserSummary{
			ID:                 user.ID,
			Email:              user.Email,
			Name:               user.Name,
			VerificationStatus: string(user.VerificationStatus),
		},
	}, nil
}

func (s *verificationService) HandleWebhook(
	ctx context.Context,
	rawBody []byte,
	signature string,
) (dto.WebhookAck, error) {
	if s.webhookSecret != "" {
		if !payments.VerifySignature(rawBody, signature, s.webhookSecret) {
			return dto.WebhookAck{}, ErrSignatureMismatch
		}
	} else {
		// Explicit operational trust decision: no secret configured means
		// the deployment accepts unauthenticated webhooks.
		s.logger.Warn("webhook secret not configured, signature check skipped")
	}

	var event dto.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return dto.WebhookAck{}, ErrValidation
	}

	switch event.Event {
	case webhookPaymentCaptured, webhookPaymentAuthorized:
		return s.processCapturedPayment(ctx, event.Payload.Payment.Entity), nil
	case webhookPaymentFailed:
		s.logger.Info("payment failed event acknowledged",
			zap.String("payment_id", event.Payload.Payment.Entity.ID),
			zap.String("email", event.Payload.Payment.Entity.Email))
		return dto.WebhookAck{Received: true, Message: "payment failure acknowledged"}, nil
	default:
		return dto.WebhookAck{Received: true, Message: "event ignored"}, nil
	}
}

// processCapturedPayment never returns an error: the provider interprets
// non-200 as "retry", and a retry against partially applied side effects
// risks duplicate processing. Failures are logged and acknowledged.
func (s *verificationService) processCapturedPayment(ctx context.Context, p dto.PaymentEntity) dto.WebhookAck {
	if strings.TrimSpace(p.ID) == "" {
		s.logger.Warn("captured payment without id, ignoring")
		return dto.WebhookAck{Received: true, Message: "payment entity missing id"}
	}

	// Replays and cross-account reuse land here: the reference is already
	// bound, so acknowledge without touching anything.
	if existing, err := s.repo.FindUserByPaymentRef(p.ID); err == nil && existing != nil {
		return dto.WebhookAck{
			Received: true,
			Message:  "payment already processed",
			UserID:   existing.ID,
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("payment ref lookup failed", zap.Error(err))
		return dto.WebhookAck{Received: true, Message: "processing deferred"}
	}

	email := utils.NormalizeEmail(p.Email)
	user, err := s.repo.FindPendingByEmailOrPhone(email, strings.TrimSpace(p.Contact))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.WebhookAck{Received: true, Message: "No matching pending user found"}
		}
		s.logger.Error("pending user lookup failed", zap.Error(err))
		return dto.WebhookAck{Received: true, Message: "processing deferred"}
	}

	if user.PaymentReference != nil && *user.PaymentReference == p.ID {
		return dto.WebhookAck{Received: true, Message: "payment already processed", UserID: user.ID}
	}

	tempPassword, err := s.approve(user, p.ID, nil)
	if err != nil {
		s.logger.Error("webhook approval failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return dto.WebhookAck{Received: true, Message: "processing deferred"}
	}

	orderRef := p.OrderID
	if orderRef != "" {
		user.OrderReference = &orderRef
	}
	// Provider amounts are in paise; persist rupees, never the minor unit.
	user.AmountPaid = float64(p.Amount) / 100

	if err := s.saveApproved(user); err != nil {
		if errors.Is(err, ErrPaymentRefTaken) {
			return dto.WebhookAck{Received: true, Message: "payment already processed"}
		}
		s.logger.Error("webhook save failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return dto.WebhookAck{Received: true, Message: "processing deferred"}
	}

	s.publishEvent("user.verified", user)
	if !s.mailer.SendCredentials(user.Email, user.Name, tempPassword) {
		s.logger.Warn("credentials email not sent",
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email))
	}

	return dto.WebhookAck{Received: true, UserID: user.ID}
}

func (s *verificationService) Approve(ctx context.Context, userID, facultyID uint) (bool, error) {
	if userID == 0 || facultyID == 0 {
		return false, ErrValidation
	}

	user, err := s.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	if user.VerificationStatus != domain.VerificationPending {
		return false, ErrAlreadyProcessed
	}

	tempPassword, err := s.approve(user, "", &facultyID)
	if err != nil {
		return false, err
	}

	if err := s.saveApproved(user); err != nil {
		return false, err
	}

	s.publishEvent("user.verified", user)
	emailSent := s.mailer.SendCredentials(user.Email, user.Name, tempPassword)
	if !emailSent {
		s.logger.Warn("credentials email not sent",
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email))
	}
	return emailSent, nil
}

func (s *verificationService) Reject(ctx context.Context, userID, facultyID uint, reason string) (bool, error) {
	reason = strings.TrimSpace(reason)
	if userID == 0 || facultyID == 0 || reason == "" {
		return false, ErrValidation
	}

	user, err := s.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	if user.VerificationStatus != domain.VerificationPending {
		return false, ErrAlreadyProcessed
	}

	now := time.Now()
	user.VerificationStatus = domain.VerificationRejected
	user.PaymentStatus = domain.PaymentFailed
	user.RejectionReason = reason
	user.VerifiedBy = &facultyID
	user.VerifiedAt = &now

	if err := s.repo.SaveUser(user); err != nil {
		return false, err
	}

	s.publishEvent("user.rejected", user)
	emailSent := s.mailer.SendRejection(user.Email, user.Name, reason)
	if !emailSent {
		s.logger.Warn("rejection email not sent",
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email))
	}
	return emailSent, nil
}

func (s *verificationService) ListPending(limit, offset int) ([]dto.PendingUserResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.ListPendingVerifications(limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PendingUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.PendingUserResponse{
			ID:           u.ID,
			Email:        u.Email,
			Name:         u.Name,
			Phone:        u.Phone,
			College:      u.College,
			Department:   u.Department,
			RegisteredAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// guardPaymentRef rejects a payment id already bound to any account.
func (s *verificationService) guardPaymentRef(paymentID string) error {
	existing, err := s.repo.FindUserByPaymentRef(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing != nil {
		return ErrPaymentRefTaken
	}
	return nil
}

// approve issues a fresh credential and flips the account to its terminal
// approved state in memory. Callers persist via saveApproved. paymentID may
// be empty for manual faculty approval; verifiedBy is nil for auto-approval.
func (s *verificationService) approve(user *domain.User, paymentID string, verifiedBy *uint) (string, error) {
	tempPassword, err := utils.GenerateTempPassword()
	if err != nil {
		return "", err
	}

	// Hash exactly once, right here. PasswordHash never holds plaintext and
	// is never re-hashed on save.
	hash, err := s.auth.HashPassword(tempPassword)
	if err != nil {
		return "", err
	}

	now := time.Now()
	user.PasswordHash = hash
	user.VerificationStatus = domain.VerificationApproved
	user.PaymentStatus = domain.PaymentCompleted
	user.VerifiedBy = verifiedBy
	user.VerifiedAt = &now
	if paymentID != "" {
		ref := paymentID
		user.PaymentReference = &ref
	}

	return tempPassword, nil
}

func (s *verificationService) saveApproved(user *domain.User) error {
	if err := s.repo.SaveUser(user); err != nil {
		if helper.IsDuplicatePaymentRef(err) {
			// Lost the race the pre-check could not exclude; same outcome
			// as the guard itself.
			return ErrPaymentRefTaken
		}
		return err
	}
	return nil
}

func (s *verificationService) publishEvent(topic string, user *domain.User) {
	if s.producer == nil {
		return
	}
	payload := fmt.Sprintf(
		`{"user_id":%d,"email":"%s","verification_status":"%s","payment_status":"%s"}`,
		user.ID, user.Email, user.VerificationStatus, user.PaymentStatus,
	)
	if err := s.producer.PublishMessage([]byte(topic), []byte(payload)); err != nil {
		s.logger.Warn("event publish failed", zap.String("topic", topic), zap.Error(err))
	}
}
