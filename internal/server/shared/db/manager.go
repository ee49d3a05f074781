package db

import (
	"context"
	"database/sql"

	"github.com/whoestate/backend/internal/server/featureoptions"
	"github.com/whoestate/backend/internal/server/intakes"
	"github.com/whoestate/backend/internal/server/messages"
	"github.com/whoestate/backend/internal/server/properties"
	"github.com/whoestate/backend/internal/server/resettokens"
	"github.com/whoestate/backend/internal/server/trackviews"
	"github.com/whoestate/backend/internal/server/users"
)

// RepositoryManager owns the database handle and hands out the
// per-entity repositories built on it.
type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	ResetTokens() resettokens.Repository
	Properties() properties.Repository
	Messages() messages.Repository
	Intakes() intakes.Repository
	FeatureOptions() featureoptions.Repository
	TrackViews() trackviews.Repository
}
