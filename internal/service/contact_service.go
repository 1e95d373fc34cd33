package service

import (
	"studystack_backend/internal/model"
	"studystack_backend/internal/repository"
)

// ContactService stores contact-form submissions. Delivery (email) is a
// separate concern and not handled here.
type ContactService struct {
	ContactRepo *repository.ContactRepository
}

func NewContactService(contactRepo *repository.ContactRepository) *ContactService {
	return &ContactService{ContactRepo: contactRepo}
}

func (s *ContactService) Submit(message *model.ContactMessage) error {
	return s.ContactRepo.Create(message)
}
