package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/whoestate/backend/internal/server/featureoptions"
	"github.com/whoestate/backend/internal/server/intakes"
	"github.com/whoestate/backend/internal/server/messages"
	"github.com/whoestate/backend/internal/server/migrations"
	"github.com/whoestate/backend/internal/server/properties"
	"github.com/whoestate/backend/internal/server/resettokens"
	"github.com/whoestate/backend/internal/server/trackviews"
	"github.com/whoestate/backend/internal/server/users"
)

type PostgresRepositoryManager struct {
	db             *sql.DB
	users          users.Repository
	resetTokens    resettokens.Repository
	properties     properties.Repository
	messages       messages.Repository
	intakes        intakes.Repository
	featureOptions featureoptions.Repository
	trackViews     trackviews.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) ResetTokens() resettokens.Repository {
	return m.resetTokens
}

func (m *PostgresRepositoryManager) Properties() properties.Repository {
	return m.properties
}

func (m *PostgresRepositoryManager) Messages() messages.Repository {
	return m.messages
}

func (m *PostgresRepositoryManager) Intakes() intakes.Repository {
	return m.intakes
}

func (m *PostgresRepositoryManager) FeatureOptions() featureoptions.Repository {
	return m.featureOptions
}

func (m *PostgresRepositoryManager) TrackViews() trackviews.Repository {
	return m.trackViews
}

// gooseUpContext is a seam for testing RunMigrations.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:             db,
		users:          users.NewPostgresRepository(db),
		resetTokens:    resettokens.NewPostgresRepository(db),
		properties:     properties.NewPostgresRepository(db),
		messages:       messages.NewPostgresRepository(db),
		intakes:        intakes.NewPostgresRepository(db),
		featureOptions: featureoptions.NewPostgresRepository(db),
		trackViews:     trackviews.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
