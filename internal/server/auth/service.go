package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/dbx"
	"github.com/whoestate/backend/internal/logging"
	"github.com/whoestate/backend/internal/server/config"
	"github.com/whoestate/backend/internal/server/mailer"
	"github.com/whoestate/backend/internal/server/password"
	"github.com/whoestate/backend/internal/server/resettokens"
	"github.com/whoestate/backend/internal/server/users"
)

// GenericResetMessage is returned by ForgotPassword on every outcome so the
// response carries no signal of whether the address is registered.
const GenericResetMessage = "If the email exists, a reset link has been sent."

// LoginResult is a successful login: the signed session credential plus the
// password-free profile.
type LoginResult struct {
	SessionToken string         `json:"access_token"`
	Profile      *users.Profile `json:"profile"`
}

// Service orchestrates the credential flows. All shared state lives in the
// stores; concurrent invocations only synchronize through them.
type Service struct {
	db         *sql.DB
	userRepo   users.Repository
	tokenRepo  resettokens.Repository
	hasher     password.Hasher
	mail       mailer.Queue
	logger     logging.Logger
	jwtSecret  []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	resetBase  string
}

func NewService(db *sql.DB, userRepo users.Repository, tokenRepo resettokens.Repository,
	hasher password.Hasher, mail mailer.Queue, logger logging.Logger, cfg *config.Config) *Service {
	return &Service{
		db:         db,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		hasher:     hasher,
		mail:       mail,
		logger:     logger.With("module", "auth"),
		jwtSecret:  []byte(cfg.SecretKey),
		sessionTTL: cfg.SessionTokenValidityDuration,
		resetTTL:   cfg.ResetTokenValidityDuration,
		resetBase:  cfg.FrontendBaseURL,
	}
}

// Login verifies email/password and mints a session credential. An unknown
// email and a wrong password are indistinguishable to the caller: both
// return common.ErrorUnauthorized. Failure has no side effects.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(plainPassword, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, err := GenerateToken(Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{SessionToken: token, Profile: user.Profile()}, nil
}

// ForgotPassword issues a fresh reset token for a registered address,
// invalidating any previous one first so at most one live token exists per
// user. The returned message is identical on both branches. Mail dispatch
// is enqueued, never awaited.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return GenericResetMessage, nil
		}
		return "", common.ErrorInternal
	}

	if err := s.tokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return "", common.ErrorInternal
	}

	token := resettokens.NewToken()
	if err := s.tokenRepo.Create(ctx, user.ID, token, s.resetTTL); err != nil {
		return "", common.ErrorInternal
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.resetBase, token)
	s.mail.Enqueue(mailer.ResetPasswordMail(user.Email, resetLink))

	s.logger.Info(ctx, "reset token issued", "user_id", user.ID)

	return GenericResetMessage, nil
}

// ResetPassword consumes a reset token and stores the new password.
// The token is single-use: consumption happens before the password write,
// inside one transaction, so of two concurrent calls with the same token
// exactly one succeeds. An expired token is rejected and deleted.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	resetToken, err := s.tokenRepo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return common.ErrorInternal
	}

	if resetToken.ExpiresAt.Before(time.Now()) {
		// expired tokens are cleaned up on rejection so they cannot pile up
		if err := s.tokenRepo.Delete(ctx, token); err != nil && !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "failed to delete expired reset token", "error", err.Error())
		}
		return common.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, resetToken.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// orphaned token: owner no longer exists
			return common.ErrInvalidToken
		}
		return common.ErrorInternal
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// consume first: a zero-row delete means another call won the race
		if err := s.tokenRepo.WithTx(tx).Delete(ctx, token); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).UpdatePassword(ctx, user.ID, hash)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}

// UpdatePassword changes the password of an already-authenticated user after
// verifying the old one. On mismatch nothing is mutated. Caller identity
// enforcement happens at the HTTP boundary; userID here is trusted.
func (s *Service) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return common.ErrorUnauthorized
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return common.ErrorInternal
	}

	return nil
}
