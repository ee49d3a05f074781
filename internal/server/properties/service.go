package properties

import (
	"context"

	"github.com/whoestate/backend/internal/logging"
)

type Service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger.With("module", "properties")}
}

// Create stores a new listing owned by userID.
func (s *Service) Create(ctx context.Context, userID string, p *Property) (*Property, error) {
	p.UserID = userID
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "listing created", "id", created.ID, "owner", userID)
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Property, error) {
	return s.repo.List(ctx)
}

func (s *Service) Query(ctx context.Context, q *Query) ([]*Property, error) {
	return s.repo.Query(ctx, q)
}

func (s *Service) LastSix(ctx context.Context) ([]*Property, error) {
	return s.repo.LastSix(ctx)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Update(ctx context.Context, id string, p *Property) (*Property, error) {
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "listing deleted", "id", id)
	return nil
}
