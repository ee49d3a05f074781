package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/logging"
	"github.com/whoestate/backend/internal/server/config"
	"github.com/whoestate/backend/internal/server/mailer"
	"github.com/whoestate/backend/internal/server/password"
)

type Service struct {
	repo   Repository
	hasher password.Hasher
	mail   mailer.Queue
	logger logging.Logger

	defaultUserPassword string
	adminEmail          string
	adminPassword       string
	adminName           string
	adminSurname        string
	adminPhone          int64
}

func NewService(repo Repository, hasher password.Hasher, mail mailer.Queue, logger logging.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:                repo,
		hasher:              hasher,
		mail:                mail,
		logger:              logger.With("module", "users"),
		defaultUserPassword: cfg.DefaultUserPassword,
		adminEmail:          cfg.AdminEmail,
		adminPassword:       cfg.AdminPassword,
		adminName:           cfg.AdminName,
		adminSurname:        cfg.AdminSurname,
		adminPhone:          cfg.AdminPhone,
	}
}

// CreateInput is what an administrator supplies when creating an account.
// The account always starts with the configured default password and the
// member role; a reset flow is expected to follow.
type CreateInput struct {
	Email       string
	Name        string
	Surname     string
	PhoneNumber int64
	Image       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Profile, error) {
	hash, err := s.hasher.Hash(s.defaultUserPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Surname:      in.Surname,
		PhoneNumber:  in.PhoneNumber,
		Image:        in.Image,
		Role:         common.RoleMember,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.mail.Enqueue(mailer.WelcomeMail(user.Email, user.Name+" "+user.Surname))

	return user.Profile(), nil
}

// EnsureAdmin seeds the configured admin account once. It is idempotent:
// when the account already exists nothing is touched, including the
// password.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	_, err := s.repo.GetByEmail(ctx, s.adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error checking admin account: %w", err)
	}

	hash, err := s.hasher.Hash(s.adminPassword)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &User{
		Email:        s.adminEmail,
		PasswordHash: hash,
		Name:         s.adminName,
		Surname:      s.adminSurname,
		PhoneNumber:  s.adminPhone,
		Role:         common.RoleAdmin,
	}

	if _, err := s.repo.Create(ctx, admin); err != nil {
		// a concurrent replica may have seeded it first
		if errors.Is(err, common.ErrorConflict) {
			return nil
		}
		return fmt.Errorf("error creating admin account: %w", err)
	}

	s.logger.Info(ctx, "admin account created", "email", s.adminEmail)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (s *Service) List(ctx context.Context) ([]*Profile, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]*Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

func (s *Service) Update(ctx context.Context, id string, upd *ProfileUpdate) (*Profile, error) {
	user, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
