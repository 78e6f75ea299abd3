package services

import (
	"context"
	"sync"

	"github.com/SemiSummit/registration_service/internal/domain"
	"gorm.io/gorm"
)

// fakeUserRepo keeps copies, so un-persisted mutations on a loaded user are
// not visible to later reads - same as a real database.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uint]*domain.User
	nextID  uint
	saveErr error
	saves   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) add(u domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	cp := u
	r.users[u.ID] = &cp
	return &u
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	created := r.add(*user)
	user.ID = created.ID
	return user, nil
}

func (r *fakeUserRepo) SaveUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindUserByResetToken(hash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetTokenHash == hash && hash != "" {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindUserByPaymentRef(ref string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PaymentReference != nil && *u.PaymentReference == ref {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindPendingByEmailOrPhone(email, phone string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *domain.User
	for _, u := range r.users {
		if u.VerificationStatus != domain.VerificationPending {
			continue
		}
		if u.Email == email || (phone != "" && u.Phone == phone) {
			if best == nil || u.ID < best.ID {
				best = u
			}
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *best
	return &cp, nil
}

func (r *fakeUserRepo) ListPendingVerifications(limit, offset int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if u.VerificationStatus == domain.VerificationPending {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeParser struct {
	text string
	err  error
}

func (p *fakeParser) ExtractText(b []byte) (string, error) {
	return p.text, p.err
}

type fakeMailer struct {
	credOK   bool
	sentCred []string
	sentRej  []string
	reasons  []string
	sentRst  []string
}

func newFakeMailer() *fakeMailer { return &fakeMailer{credOK: true} }

func (m *fakeMailer) SendCredentials(to, name, tempPassword string) bool {
	m.sentCred = append(m.sentCred, to)
	return m.credOK
}

func (m *fakeMailer) SendRejection(to, name, reason string) bool {
	m.sentRej = append(m.sentRej, to)
	m.reasons = append(m.reasons, reason)
	return true
}

func (m *fakeMailer) SendPasswordReset(to, name, resetLink string) bool {
	m.sentRst = append(m.sentRst, resetLink)
	return true
}

type fakeUploader struct {
	url string
	err error
}

func (u *fakeUploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if u.url == "" {
		return "https://cdn.example/" + folder + "/" + filename, nil
	}
	return u.url, nil
}

type fakeProducer struct {
	topics []string
}

func (p *fakeProducer) PublishMessage(key, value []byte) error {
	p.topics = append(p.topics, string(key))
	return nil
}
