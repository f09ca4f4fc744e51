package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "github.com/lao-sha/fissionmall/internal/adapters/out/postgres"
	"github.com/lao-sha/fissionmall/internal/adapters/out/events"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// StoreIntegrationTestSuite runs the key-value backend and the unit of work
// against a real PostgreSQL database.
type StoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *postgres_adapter.Store
	recorder  *events.Recorder
	factory   ports.UnitOfWorkFactory
}

func (suite *StoreIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("skipping postgres integration tests in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.store = postgres_adapter.NewStore(db)
	suite.Require().NoError(suite.store.Migrate(ctx))
}

// SetupTest truncates the table so tests do not see each other's entries.
func (suite *StoreIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE kv_entries").Error
	suite.Require().NoError(err)

	suite.recorder = events.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.factory = storage.NewUnitOfWorkFactory(suite.store, suite.recorder, logger)
}

func (suite *StoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *StoreIntegrationTestSuite) TestTransaction_PutGetKeys() {
	ctx := context.Background()

	tx, err := suite.store.Begin(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.Put(ctx, "Type.note", "b", []byte("2")))
	suite.Require().NoError(tx.Put(ctx, "Type.note", "a", []byte("1")))
	suite.Require().NoError(tx.Put(ctx, "Type.note", "a", []byte("3")), "Put should overwrite")
	suite.Require().NoError(tx.Commit(ctx))

	tx, err = suite.store.Begin(ctx)
	suite.Require().NoError(err)
	defer tx.Rollback(ctx)

	value, err := tx.Get(ctx, "Type.note", "a")
	suite.Require().NoError(err)
	suite.Equal([]byte("3"), value)

	keys, err := tx.Keys(ctx, "Type.note")
	suite.Require().NoError(err)
	suite.Equal([]string{"a", "b"}, keys)

	suite.Require().NoError(tx.Delete(ctx, "Type.note", "a"))
	_, err = tx.Get(ctx, "Type.note", "a")
	suite.Require().ErrorIs(err, records.ErrKeyNotFound)
}

func (suite *StoreIntegrationTestSuite) TestTransaction_BinaryKeys() {
	ctx := context.Background()

	tx, err := suite.store.Begin(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.Put(ctx, "Type.note", "\xff", []byte("2")))
	suite.Require().NoError(tx.Put(ctx, "Type.note", "a\x00", []byte("1")))
	suite.Require().NoError(tx.Commit(ctx))

	tx, err = suite.store.Begin(ctx)
	suite.Require().NoError(err)
	defer tx.Rollback(ctx)

	value, err := tx.Get(ctx, "Type.note", "\xff")
	suite.Require().NoError(err)
	suite.Equal([]byte("2"), value)

	keys, err := tx.Keys(ctx, "Type.note")
	suite.Require().NoError(err)
	suite.Equal([]string{"a\x00", "\xff"}, keys)

	suite.Require().NoError(tx.Delete(ctx, "Type.note", "\xff"))
	_, err = tx.Get(ctx, "Type.note", "\xff")
	suite.Require().ErrorIs(err, records.ErrKeyNotFound)
}

func (suite *StoreIntegrationTestSuite) TestTransaction_Errors() {
	ctx := context.Background()

	tx, err := suite.store.Begin(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.Rollback(ctx))

	suite.Require().ErrorIs(tx.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(tx.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *StoreIntegrationTestSuite) TestUnitOfWork_CommitAndRollback() {
	ctx := context.Background()
	code, _ := kernel.NewCode("code", "O1")
	member, _ := kernel.NewCode("member", "M1")
	institution, _ := kernel.NewCode("institution", "I1")
	alice, _ := kernel.NewAccountID("alice")

	committed, err := c2corder.NewOrder(code, member, institution, c2corder.UserSell, 100, 150, alice, 1)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.C2COrderRepository().Add(ctx, committed))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal([]string{c2corder.EventCreated}, suite.recorder.Names())

	otherCode, _ := kernel.NewCode("code", "O2")
	rolledBack, err := c2corder.NewOrder(otherCode, member, institution, c2corder.UserSell, 100, 150, alice, 2)
	suite.Require().NoError(err)

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.C2COrderRepository().Add(ctx, rolledBack))
	suite.Require().NoError(uow.Rollback(ctx))

	read := suite.factory.Create()
	suite.Require().NoError(read.Begin(ctx))
	defer read.Rollback(ctx)

	got, err := read.C2COrderRepository().Get(ctx, code)
	suite.Require().NoError(err)
	suite.Equal(c2corder.UserSell, got.Direction())

	_, err = read.C2COrderRepository().Get(ctx, otherCode)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	members, err := read.C2COrderRepository().Members(ctx, ports.IndexMember, "M1")
	suite.Require().NoError(err)
	suite.Equal([]string{"O1"}, members)
}

func TestStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StoreIntegrationTestSuite))
}
