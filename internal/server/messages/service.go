package messages

import (
	"context"
	"fmt"

	"github.com/whoestate/backend/internal/logging"
	"github.com/whoestate/backend/internal/server/config"
	"github.com/whoestate/backend/internal/server/mailer"
)

type Service struct {
	repo       Repository
	mail       mailer.Queue
	logger     logging.Logger
	adminEmail string
}

func NewService(repo Repository, mail mailer.Queue, logger logging.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		mail:       mail,
		logger:     logger.With("module", "messages"),
		adminEmail: cfg.AdminEmail,
	}
}

// Create stores a contact-form submission and notifies the admin inbox.
// The notification is best-effort; the submission is stored either way.
func (s *Service) Create(ctx context.Context, m *Message) (*Message, error) {
	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("%s %s <%s>: %s", created.Name, created.Surname, created.Email, created.Message)
	s.mail.Enqueue(mailer.ContactNotificationMail(s.adminEmail, summary))

	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Message, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Message, error) {
	return s.repo.List(ctx)
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
