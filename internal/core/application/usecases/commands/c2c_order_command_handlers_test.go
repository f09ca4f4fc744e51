package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/core/application/usecases/commands"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/c2corder"
	"github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"
	"github.com/lao-sha/fissionmall/internal/core/ports"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockC2COrderRepository struct{ mock.Mock }

func (m *MockC2COrderRepository) Add(ctx context.Context, o *c2corder.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockC2COrderRepository) Update(ctx context.Context, o *c2corder.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockC2COrderRepository) Remove(ctx context.Context, o *c2corder.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockC2COrderRepository) Get(ctx context.Context, code kernel.BoundedID) (*c2corder.Order, error) {
	args := m.Called(ctx, code)
	o, _ := args.Get(0).(*c2corder.Order)
	return o, args.Error(1)
}

func (m *MockC2COrderRepository) Members(_ context.Context, _, _ string) ([]string, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockC2COrderRepository) Snapshot(_ context.Context) (records.Snapshot, error) {
	return records.Snapshot{}, errors.New("not implemented in mock")
}

type MockC2COrderUoW struct{ mock.Mock }

func (m *MockC2COrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockC2COrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockC2COrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockC2COrderUoW) C2COrderRepository() ports.C2COrderRepository {
	args := m.Called()
	return args.Get(0).(ports.C2COrderRepository)
}

type MockC2COrderUoWFactory struct{ mock.Mock }

func (m *MockC2COrderUoWFactory) Create() commands.C2COrderUoW {
	args := m.Called()
	return args.Get(0).(commands.C2COrderUoW)
}

func storedC2COrder(t *testing.T, status c2corder.Status) *c2corder.Order {
	t.Helper()
	code, _ := kernel.NewCode("code", "O1")
	member, _ := kernel.NewCode("member", "M1")
	institution, _ := kernel.NewCode("institution", "I1")
	alice, _ := kernel.NewAccountID("alice")
	o, err := c2corder.RestoreOrder(code, member, institution, status, c2corder.UserBuy, 100, 150, alice, 1, 1)
	require.NoError(t, err)
	return o
}

func TestCreateC2COrderCommandHandler_Handle(t *testing.T) {
	t.Run("should add the order and commit", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateC2COrderCommand("alice", "O1", "M1", "I1", 1, 100, 150)
		require.NoError(t, err)

		repo := new(MockC2COrderRepository)
		uow := new(MockC2COrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("C2COrderRepository").Return(repo).Once(),
			repo.On("Add", mock.Anything, mock.AnythingOfType("*c2corder.Order")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockC2COrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateC2COrderCommandHandler(factory, memory.NewClock(0))
		require.NoError(t, h.Handle(ctx, cmd))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
		factory.AssertExpectations(t)
	})

	t.Run("should reject a command that skipped its constructor", func(t *testing.T) {
		factory := new(MockC2COrderUoWFactory)
		h := commands.NewCreateC2COrderCommandHandler(factory, memory.NewClock(0))

		err := h.Handle(t.Context(), commands.CreateC2COrderCommand{})
		require.ErrorIs(t, err, commands.ErrCreateC2COrderCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("should not open a unit of work for a zero amount", func(t *testing.T) {
		cmd, err := commands.NewCreateC2COrderCommand("alice", "O2", "M1", "I1", 1, 0, 150)
		require.NoError(t, err)
		factory := new(MockC2COrderUoWFactory)
		h := commands.NewCreateC2COrderCommandHandler(factory, memory.NewClock(0))

		err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrValidation)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("should roll back when add fails", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCreateC2COrderCommand("alice", "O1", "M1", "I1", 1, 100, 150)

		repo := new(MockC2COrderRepository)
		uow := new(MockC2COrderUoW)
		full := errs.NewIndexIsFullError("c2c_order.institution", "I1", 1)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("C2COrderRepository").Return(repo).Once(),
			repo.On("Add", mock.Anything, mock.AnythingOfType("*c2corder.Order")).Return(full).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockC2COrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCreateC2COrderCommandHandler(factory, memory.NewClock(0))
		err := h.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrCapacity)
		uow.AssertNotCalled(t, "Commit", ctx)
		uow.AssertExpectations(t)
	})

	t.Run("should return the begin error", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCreateC2COrderCommand("alice", "O1", "M1", "I1", 1, 100, 150)

		uow := new(MockC2COrderUoW)
		factory := new(MockC2COrderUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
		)

		h := commands.NewCreateC2COrderCommandHandler(factory, memory.NewClock(0))
		require.EqualError(t, h.Handle(ctx, cmd), "begin error")
	})
}

func TestUpdateC2COrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should move the order and update it", func(t *testing.T) {
		ctx := t.Context()
		stored := storedC2COrder(t, c2corder.Pending)
		cmd, err := commands.NewUpdateC2COrderStatusCommand("alice", "O1", c2corder.Paid.Code())
		require.NoError(t, err)

		repo := new(MockC2COrderRepository)
		uow := new(MockC2COrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("C2COrderRepository").Return(repo).Once(),
			repo.On("Get", mock.Anything, cmd.Code()).Return(stored, nil).Once(),
			repo.On("Update", mock.Anything, stored).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockC2COrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewUpdateC2COrderStatusCommandHandler(factory, memory.NewClock(5), kernel.CreatorOnly())
		require.NoError(t, h.Handle(ctx, cmd))
		assert.Equal(t, c2corder.Paid, stored.Status())
		assert.Equal(t, kernel.Timestamp(6), stored.UpdatedAt())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should reject a caller other than the creator", func(t *testing.T) {
		ctx := t.Context()
		stored := storedC2COrder(t, c2corder.Pending)
		cmd, _ := commands.NewUpdateC2COrderStatusCommand("mallory", "O1", c2corder.Paid.Code())

		repo := new(MockC2COrderRepository)
		uow := new(MockC2COrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("C2COrderRepository").Return(repo).Once(),
			repo.On("Get", mock.Anything, cmd.Code()).Return(stored, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockC2COrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewUpdateC2COrderStatusCommandHandler(factory, memory.NewClock(0), kernel.CreatorOnly())
		err := h.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, c2corder.Pending, stored.Status())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should reject an edge missing from the table", func(t *testing.T) {
		ctx := t.Context()
		stored := storedC2COrder(t, c2corder.Pending)
		cmd, _ := commands.NewUpdateC2COrderStatusCommand("alice", "O1", c2corder.Completed.Code())

		repo := new(MockC2COrderRepository)
		uow := new(MockC2COrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("C2COrderRepository").Return(repo).Once()
		repo.On("Get", mock.Anything, cmd.Code()).Return(stored, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockC2COrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewUpdateC2COrderStatusCommandHandler(factory, memory.NewClock(0), kernel.CreatorOnly())
		err := h.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		require.ErrorIs(t, err, errs.ErrState)
	})

	t.Run("should return not found for a missing order", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewUpdateC2COrderStatusCommand("alice", "O9", c2corder.Paid.Code())

		repo := new(MockC2COrderRepository)
		uow := new(MockC2COrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("C2COrderRepository").Return(repo).Once()
		repo.On("Get", mock.Anything, cmd.Code()).Return(nil, errs.NewObjectNotFoundError("c2c_order", "O9")).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockC2COrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewUpdateC2COrderStatusCommandHandler(factory, memory.NewClock(0), kernel.CreatorOnly())
		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	})
}

func TestCancelAndCompleteC2COrderCommandHandlers(t *testing.T) {
	tests := []struct {
		name    string
		from    c2corder.Status
		cancel  bool
		want    c2corder.Status
		wantErr error
	}{
		{name: "should cancel a paid order", from: c2corder.Paid, cancel: true, want: c2corder.Cancelled},
		{name: "should not cancel a delivered order", from: c2corder.Delivered, cancel: true, wantErr: errs.ErrState},
		{name: "should complete a notarizing order", from: c2corder.Notarizing, want: c2corder.Completed},
		{name: "should not complete a paid order", from: c2corder.Paid, wantErr: errs.ErrTransitionIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			stored := storedC2COrder(t, tt.from)
			cmd, err := commands.NewC2COrderCommand("alice", "O1")
			require.NoError(t, err)

			repo := new(MockC2COrderRepository)
			uow := new(MockC2COrderUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("C2COrderRepository").Return(repo).Once()
			repo.On("Get", mock.Anything, cmd.Code()).Return(stored, nil).Once()
			repo.On("Update", mock.Anything, stored).Return(nil).Maybe()
			uow.On("Commit", ctx).Return(nil).Maybe()
			uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockC2COrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			if tt.cancel {
				h := commands.NewCancelC2COrderCommandHandler(factory, memory.NewClock(0), kernel.CreatorOnly())
				err = h.Handle(ctx, cmd)
			} else {
				h := commands.NewCompleteC2COrderCommandHandler(factory, memory.NewClock(0), kernel.CreatorOnly())
				err = h.Handle(ctx, cmd)
			}

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, stored.Status())
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Status())
		})
	}
}

func TestDeleteC2COrderCommandHandler_Handle(t *testing.T) {
	t.Run("should remove the order for its creator", func(t *testing.T) {
		ctx := t.Context()
		stored := storedC2COrder(t, c2corder.Completed)
		cmd, _ := commands.NewC2COrderCommand("alice", "O1")

		repo := new(MockC2COrderRepository)
		uow := new(MockC2COrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("C2COrderRepository").Return(repo).Once(),
			repo.On("Get", mock.Anything, cmd.Code()).Return(stored, nil).Once(),
			repo.On("Remove", mock.Anything, stored).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockC2COrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewDeleteC2COrderCommandHandler(factory, memory.NewClock(0), kernel.CreatorOnly())
		require.NoError(t, h.Handle(ctx, cmd))
		require.Len(t, stored.DomainEvents(), 1)
		assert.Equal(t, c2corder.EventDeleted, stored.DomainEvents()[0].Name)
		repo.AssertExpectations(t)
	})

	t.Run("should admit an operator account", func(t *testing.T) {
		ctx := t.Context()
		stored := storedC2COrder(t, c2corder.Pending)
		cmd, _ := commands.NewC2COrderCommand("operator", "O1")
		operator, _ := kernel.NewAccountID("operator")

		repo := new(MockC2COrderRepository)
		uow := new(MockC2COrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("C2COrderRepository").Return(repo).Once()
		repo.On("Get", mock.Anything, cmd.Code()).Return(stored, nil).Once()
		repo.On("Remove", mock.Anything, stored).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockC2COrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		authorizer := kernel.AnyOf(kernel.CreatorOnly(), kernel.Accounts(operator))
		h := commands.NewDeleteC2COrderCommandHandler(factory, memory.NewClock(0), authorizer)
		require.NoError(t, h.Handle(ctx, cmd))
		repo.AssertExpectations(t)
	})
}
