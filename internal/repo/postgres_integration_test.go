//go:build integration

package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/internal/postgres"
	"github.com/SergeyBogomolovv/publika-insight/internal/repo"
	"github.com/SergeyBogomolovv/publika-insight/pkg/trm"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresRepoSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresRepoSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("orders"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(postgres.Migrate(db))
	// повторный прогон миграций не должен падать
	s.Require().NoError(postgres.Migrate(db))
}

func (s *PostgresRepoSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresRepoSuite) SetupTest() {
	_, err := s.db.Exec("TRUNCATE TABLE orders")
	s.Require().NoError(err)
}

func (s *PostgresRepoSuite) newOrder(createdAt time.Time) entities.Order {
	pkg, _ := entities.FindPackage("sinta5")
	return entities.Order{
		OrderID:      entities.NewOrderID(),
		FullName:     "Siti Rahma",
		Email:        "siti@example.ac.id",
		Institution:  "Universitas Indonesia",
		JournalTitle: "Deep Learning for Batik Classification",
		Topic:        "Ilmu Komputer",
		Level:        "SINTA 5",
		Package:      pkg,
		Status:       entities.StatusProcessing,
		CreatedAt:    createdAt.UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresRepoSuite) TestSaveAndGet() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)

	order := s.newOrder(time.Now())
	s.Require().NoError(r.SaveOrder(ctx, order))

	got, err := r.GetOrderByID(ctx, order.OrderID)
	s.Require().NoError(err)
	s.Equal(order, got)
}

func (s *PostgresRepoSuite) TestSaveDuplicate() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)

	order := s.newOrder(time.Now())
	s.Require().NoError(r.SaveOrder(ctx, order))
	s.ErrorIs(r.SaveOrder(ctx, order), entities.ErrOrderExists)
}

func (s *PostgresRepoSuite) TestGetNotFound() {
	r := repo.NewPostgresRepo(s.db)

	_, err := r.GetOrderByID(context.Background(), "ORD-missing")
	s.ErrorIs(err, entities.ErrOrderNotFound)
}

func (s *PostgresRepoSuite) TestListAndLatest() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)

	now := time.Now()
	older := s.newOrder(now.Add(-time.Hour))
	newer := s.newOrder(now)
	s.Require().NoError(r.SaveOrder(ctx, older))
	s.Require().NoError(r.SaveOrder(ctx, newer))

	all, err := r.ListOrders(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(newer.OrderID, all[0].OrderID)
	s.Equal(older.OrderID, all[1].OrderID)

	latest, err := r.LatestOrders(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(latest, 1)
	s.Equal(newer.OrderID, latest[0].OrderID)

	for _, count := range []int{0, -1} {
		latest, err := r.LatestOrders(ctx, count)
		s.Require().NoError(err)
		s.Empty(latest)
	}
}

func (s *PostgresRepoSuite) TestListEmpty() {
	r := repo.NewPostgresRepo(s.db)

	all, err := r.ListOrders(context.Background())
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *PostgresRepoSuite) TestUpdateStatus() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)

	order := s.newOrder(time.Now())
	s.Require().NoError(r.SaveOrder(ctx, order))

	s.Require().NoError(r.UpdateStatus(ctx, order.OrderID, entities.StatusCompleted))

	got, err := r.GetOrderByID(ctx, order.OrderID)
	s.Require().NoError(err)
	s.Equal(entities.StatusCompleted, got.Status)
	s.Equal(order.Package, got.Package)

	s.ErrorIs(r.UpdateStatus(ctx, "ORD-missing", entities.StatusCompleted), entities.ErrOrderNotFound)
}

func (s *PostgresRepoSuite) TestUpdateInTransactionRollsBack() {
	ctx := context.Background()
	r := repo.NewPostgresRepo(s.db)
	txManager := trm.NewManager(s.db)

	order := s.newOrder(time.Now())
	s.Require().NoError(r.SaveOrder(ctx, order))

	err := txManager.Do(ctx, func(ctx context.Context) error {
		if err := r.UpdateStatus(ctx, order.OrderID, entities.StatusCompleted); err != nil {
			return err
		}
		got, err := r.GetOrderByID(ctx, order.OrderID)
		s.Require().NoError(err)
		s.Equal(entities.StatusCompleted, got.Status)
		return context.Canceled
	})
	s.ErrorIs(err, context.Canceled)

	got, err := r.GetOrderByID(ctx, order.OrderID)
	s.Require().NoError(err)
	s.Equal(entities.StatusProcessing, got.Status)
}

func TestPostgresRepoSuite(t *testing.T) {
	suite.Run(t, new(PostgresRepoSuite))
}
