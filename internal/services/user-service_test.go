package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/SemiSummit/registration_service/internal/domain"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/SemiSummit/registration_service/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUserService(repo *fakeUserRepo, mailer *fakeMailer) UserService {
	return NewUserService(
		repo,
		helper.SetupAuth("test-secret"),
		mailer,
		&fakeProducer{},
		"https://summit.example/",
		zap.NewNop(),
	)
}

func TestRegisterCreatesPendingParticipant(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, newFakeMailer())

	user, err := svc.Register(dto.RegisterRequest{
		Name:       "Asha Rao",
		Email:      "  Asha@College.EDU ",
		Phone:      "9990001111",
		College:    "IIT",
		Department: "ECE",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@college.edu", user.Email)
	assert.Equal(t, domain.RoleParticipant, user.Role)
	assert.Equal(t, domain.VerificationPending, user.VerificationStatus)
	assert.Equal(t, domain.PaymentPending, user.PaymentStatus)
	assert.Empty(t, user.PasswordHash, "no credentials before verification")

	_, err = svc.Register(dto.RegisterRequest{
		Name:  "Asha Again",
		Email: "asha@college.edu",
		Phone: "9990001112",
	})
	assert.EqualError(t, err, "email already exists")
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), newFakeMailer())

	_, err := svc.Register(dto.RegisterRequest{Email: "a@b.c", Phone: "1"})
	assert.Error(t, err)

	_, err = svc.Register(dto.RegisterRequest{Name: "A", Email: "not-an-email", Phone: "1"})
	assert.Error(t, err)
}

func TestLoginRequiresApprovedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, newFakeMailer())
	auth := helper.SetupAuth("test-secret")

	hash, err := auth.HashPassword("Kd7mXp2Q")
	require.NoError(t, err)

	u := repo.add(domain.User{
		Email:              "asha@college.edu",
		Name:               "Asha Rao",
		PasswordHash:       hash,
		VerificationStatus: domain.VerificationPending,
	})

	_, err = svc.Login(dto.UserLogin{Email: "asha@college.edu", Password: "Kd7mXp2Q"})
	assert.EqualError(t, err, "registration is pending verification")

	u.VerificationStatus = domain.VerificationApproved
	repo.add(*u)

	got, err := svc.Login(dto.UserLogin{Email: "asha@college.edu", Password: "Kd7mXp2Q"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(dto.UserLogin{Email: "asha@college.edu", Password: "wrong"})
	assert.Error(t, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := newFakeMailer()
	svc := newTestUserService(repo, mailer)

	u := repo.add(domain.User{
		Email:              "asha@college.edu",
		Name:               "Asha Rao",
		VerificationStatus: domain.VerificationApproved,
	})

	require.NoError(t, svc.ForgotPassword("asha@college.edu"))
	require.Len(t, mailer.sentRst, 1)

	link := mailer.sentRst[0]
	assert.True(t, strings.HasPrefix(link, "https://summit.example/reset-password?token="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	require.NoError(t, svc.SetPassword(dto.SetPasswordRequest{
		Token:       token,
		NewPassword: "NewPass22",
	}))

	got, err := svc.Login(dto.UserLogin{Email: "asha@college.edu", Password: "NewPass22"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// token is single-use
	err = svc.SetPassword(dto.SetPasswordRequest{Token: token, NewPassword: "Another33"})
	assert.Error(t, err)
}

func TestForgotPasswordRequiresCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, newFakeMailer())

	repo.add(domain.User{
		Email:              "pending@college.edu",
		VerificationStatus: domain.VerificationPending,
	})

	assert.Error(t, svc.ForgotPassword("pending@college.edu"))
	assert.Error(t, svc.ForgotPassword("missing@college.edu"))
}

func TestSetPasswordRejectsShortPassword(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), newFakeMailer())

	err := svc.SetPassword(dto.SetPasswordRequest{Token: "tok", NewPassword: "abc"})
	assert.EqualError(t, err, "password must be at least 6 characters")
}
