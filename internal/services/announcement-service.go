package services

import (
	"errors"
	"strings"

	"github.com/SemiSummit/registration_service/internal/domain"
	"github.com/SemiSummit/registration_service/internal/dto"
	"github.com/SemiSummit/registration_service/internal/repository"
	"gorm.io/gorm"
)

type AnnouncementService interface {
	Create(authorID uint, input dto.AnnouncementInput) (*domain.Announcement, error)
	Update(id uint, input dto.AnnouncementInput) (*domain.Announcement, error)
	Delete(id uint) error
	List(limit, offset int) ([]domain.Announcement, error)
}

type announcementService struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{repo: repo}
}

func (s *announcementService) Create(authorID uint, input dto.AnnouncementInput) (*domain.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)

	if authorID == 0 || title == "" || body == "" {
		return nil, errors.New("title and body are required")
	}

	a := &domain.Announcement{
		Title:    title,
		Body:     body,
		AuthorID: authorID,
		Pinned:   input.Pinned,
	}
	if err := s.repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Update(id uint, input dto.AnnouncementInput) (*domain.Announcement, error) {
	a, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("announcement not found")
		}
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		a.Title = title
	}
	if body := strings.TrimSpace(input.Body); body != "" {
		a.Body = body
	}
	a.Pinned = input.Pinned

	if err := s.repo.Save(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) Delete(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("announcement not found")
		}
		return err
	}
	return s.repo.Delete(id)
}

func (s *announcementService) List(limit, offset int) ([]domain.Announcement, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(limit, offset)
}
