package commands_test

import (
	"log/slog"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolvePendingFeesCommandHandler_Handle_ResolvesDegradedOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewResolvePendingFeesCommand()
	require.NoError(t, err)

	degraded := storedOrder(t, 7)
	location := locationAt(t, -33.8688, 151.2093)

	geo := new(MockGeoResolver)
	geo.On("ResolveAddress", mock.Anything, degraded.DeliveryAddress()).Return(location, nil).Once()
	geo.On("ResolveAddress", mock.Anything, degraded.RestaurantAddress()).Return(location, nil).Once()

	repo := new(MockOrderRepository)
	repo.On("GetAllWithUnresolvedFee", mock.Anything).Return([]*order.Order{degraded}, nil).Once()
	repo.On("Get", mock.Anything, int64(7)).Return(degraded, nil).Once()
	repo.On("Update", mock.Anything, degraded).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewResolvePendingFeesCommandHandler(factory, geo, slog.New(slog.DiscardHandler))
	resolved, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, resolved)

	fee, known := degraded.DeliveryFee()
	require.True(t, known)
	assert.InDelta(t, 5, fee, 1e-9)
	repo.AssertExpectations(t)
	geo.AssertExpectations(t)
}

func TestResolvePendingFeesCommandHandler_Handle_GeocoderStillDown(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewResolvePendingFeesCommand()
	require.NoError(t, err)

	degraded := storedOrder(t, 7)

	geo := new(MockGeoResolver)
	geo.On("ResolveAddress", mock.Anything, mock.Anything).
		Return(kernel.Location{}, ports.ErrResolutionFailed)

	repo := new(MockOrderRepository)
	repo.On("GetAllWithUnresolvedFee", mock.Anything).Return([]*order.Order{degraded}, nil).Once()
	repo.On("Get", mock.Anything, int64(7)).Return(degraded, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewResolvePendingFeesCommandHandler(factory, geo, slog.New(slog.DiscardHandler))
	resolved, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, resolved)

	_, known := degraded.DeliveryFee()
	assert.False(t, known, "fee stays unresolved for the next run")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResolvePendingFeesCommandHandler_Handle_NothingToDo(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewResolvePendingFeesCommand()
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetAllWithUnresolvedFee", mock.Anything).Return([]*order.Order{}, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewResolvePendingFeesCommandHandler(factory, new(MockGeoResolver), slog.New(slog.DiscardHandler))
	resolved, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, resolved)
}
