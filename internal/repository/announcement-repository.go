package repository

import (
	"errors"
	"log"

	"github.com/SemiSummit/registration_service/internal/domain"
	"gorm.io/gorm"
)

type AnnouncementRepository interface {
	Create(a *domain.Announcement) error
	Save(a *domain.Announcement) error
	FindByID(id uint) (*domain.Announcement, error)
	List(limit, offset int) ([]domain.Announcement, error)
	Delete(id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(a *domain.Announcement) error {
	if a == nil {
		return errors.New("nil announcement")
	}

	if err := r.db.Create(a).Error; err != nil {
		log.Printf("create announcement error: %v", err)
		return err
	}
	return nil
}

func (r *announcementRepository) Save(a *domain.Announcement) error {
	if a == nil {
		return errors.New("nil announcement")
	}

	if err := r.db.Save(a).Error; err != nil {
		log.Printf("save announcement error: %v", err)
		return err
	}
	return nil
}

func (r *announcementRepository) FindByID(id uint) (*domain.Announcement, error) {
	a := &domain.Announcement{}

	if err := r.db.First(a, id).Error; err != nil {
		return nil, err
	}

	return a, nil
}

func (r *announcementRepository) List(limit, offset int) ([]domain.Announcement, error) {
	var out []domain.Announcement

	err := r.db.
		Order("pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	if err != nil {
		log.Printf("list announcements error: %v", err)
		return nil, err
	}

	return out, nil
}

func (r *announcementRepository) Delete(id uint) error {
	if err := r.db.Delete(&domain.Announcement{}, id).Error; err != nil {
		log.Printf("delete announcement error: %v", err)
		return err
	}
	return nil
}
