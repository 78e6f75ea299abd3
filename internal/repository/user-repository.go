package repository

import (
	"errors"
	"log"

	"github.com/SemiSummit/registration_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	SaveUser(user *domain.User) error
	FindUserById(userID uint) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByResetToken(hash string) (*domain.User, error)
	// FindUserByPaymentRef backs the duplicate guard: any account holding
	// the reference counts, whoever owns it.
	FindUserByPaymentRef(ref string) (*domain.User, error)
	FindPendingByEmailOrPhone(email, phone string) (*domain.User, error)
	ListPendingVerifications(limit, offset int) ([]domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, err
	}

	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return err
	}
	return nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByResetToken(hash string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.Where("reset_token_hash = ?", hash).First(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByPaymentRef(ref string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.Where("payment_reference = ?", ref).First(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindPendingByEmailOrPhone(email, phone string) (*domain.User, error) {
	user := &domain.User{}

	q := r.db.Where("verification_status = ?", domain.VerificationPending)
	if phone != "" {
		q = q.Where("email = ? OR phone = ?", email, phone)
	} else {
		q = q.Where("email = ?", email)
	}

	if err := q.Order("id").First(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ListPendingVerifications(limit, offset int) ([]domain.User, error) {
	var users []domain.User

	err := r.db.
		Where("verification_status = ?", domain.VerificationPending).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		log.Printf("list pending verifications error: %v", err)
		return nil, err
	}

	return users, nil
}
