// Package pgtest starts a disposable PostgreSQL container for integration
// suites of the postgres adapters.
package pgtest

import (
	"context"
	"time"

	"cafeteria/internal/adapters/out/postgres"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Suite owns the container and a migrated connection. Embed it and call
// StartPostgres from SetupSuite; SetupTest empties every table.
type Suite struct {
	suite.Suite
	Container *pgcontainer.PostgresContainer
	DB        *gorm.DB
}

func (s *Suite) StartPostgres() {
	testcontainers.SkipIfProviderIsNotHealthy(s.T())

	ctx := context.Background()
	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.Container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.DB = db

	s.Require().NoError(postgres.Migrate(ctx, db))
}

func (s *Suite) SetupTest() {
	s.Require().NoError(postgres.Truncate(context.Background(), s.DB))
}

func (s *Suite) TearDownSuite() {
	if s.Container != nil {
		s.Require().NoError(s.Container.Terminate(context.Background()))
	}
}
