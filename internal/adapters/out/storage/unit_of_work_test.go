package storage_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/lao-sha/fissionmall/internal/adapters/out/events"
	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/adapters/out/storage"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	recorder *events.Recorder
	factory  *storage.UnitOfWorkFactory
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	s.recorder = events.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.factory = storage.NewUnitOfWorkFactory(memory.NewStore(), s.recorder, logger)
}

func (s *UnitOfWorkTestSuite) newOrder(raw string) *c2corder.Order {
	code, _ := kernel.NewCode("code", raw)
	member, _ := kernel.NewCode("member", "M1")
	institution, _ := kernel.NewCode("institution", "I1")
	alice, _ := kernel.NewAccountID("alice")
	o, err := c2corder.NewOrder(code, member, institution, c2corder.UserBuy, 100, 150, alice, 1)
	s.Require().NoError(err)
	return o
}

func (s *UnitOfWorkTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := s.factory.Create()

	s.Require().ErrorIs(uow.Commit(ctx), storage.ErrNoTransaction)
	s.Require().ErrorIs(uow.Rollback(ctx), storage.ErrNoTransaction)

	_, err := uow.C2COrderRepository().Get(ctx, kernel.BoundedID{})
	s.Require().ErrorIs(err, storage.ErrNoTransaction)
}

func (s *UnitOfWorkTestSuite) TestCommitPublishesEvents() {
	ctx := context.Background()
	uow := s.factory.Create()
	o := s.newOrder("O1")

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	s.Require().NoError(uow.C2COrderRepository().Add(ctx, o))
	s.Empty(s.recorder.Events(), "Nothing is published before commit")
	s.Require().NoError(uow.Commit(ctx))

	s.Equal([]string{c2corder.EventCreated}, s.recorder.Names())
	s.Empty(o.DomainEvents())

	read := s.factory.Create()
	s.Require().NoError(read.Begin(ctx))
	defer read.Rollback(ctx)
	_, err := read.C2COrderRepository().Get(ctx, o.Code())
	s.Require().NoError(err)
}

func (s *UnitOfWorkTestSuite) TestRollbackDiscardsEverything() {
	ctx := context.Background()
	uow := s.factory.Create()
	o := s.newOrder("O1")

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.C2COrderRepository().Add(ctx, o))
	s.Require().NoError(uow.Rollback(ctx))

	s.Empty(s.recorder.Events())

	read := s.factory.Create()
	s.Require().NoError(read.Begin(ctx))
	defer read.Rollback(ctx)
	_, err := read.C2COrderRepository().Get(ctx, o.Code())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
