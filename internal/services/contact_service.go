package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prplkane/umazona-website/internal/events"
	"github.com/prplkane/umazona-website/internal/models"
	"github.com/prplkane/umazona-website/internal/repositories"
)

var ErrContactMissingFields = errors.New("name and email are required fields")

type ContactInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactService saves reservation leads and fires the best-effort
// notification event.
type ContactService struct {
	repo   repositories.ContactRepository
	bus    *events.Bus
	logger *slog.Logger
}

func NewContactService(repo repositories.ContactRepository, bus *events.Bus, logger *slog.Logger) *ContactService {
	return &ContactService{repo: repo, bus: bus, logger: logger}
}

func (s *ContactService) Save(ctx context.Context, in ContactInput) (*models.Contact, error) {
	if in.Name == "" || in.Email == "" {
		return nil, ErrContactMissingFields
	}

	contact, err := s.repo.Insert(ctx, &models.Contact{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Message: in.Message,
	})
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(events.TopicContactCreated, events.ContactCreatedPayload{
			ID:      contact.ID,
			Name:    contact.Name,
			Email:   contact.Email,
			Phone:   contact.Phone,
			Message: contact.Message,
		})
	}

	return contact, nil
}
