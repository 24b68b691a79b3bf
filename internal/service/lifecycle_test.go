package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/internal/service"
	"github.com/SergeyBogomolovv/publika-insight/pkg/cache"
	"github.com/SergeyBogomolovv/publika-insight/pkg/trm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo хранит заказы в памяти вместо postgres
type memRepo struct {
	mu     sync.Mutex
	orders map[string]entities.Order
}

func newMemRepo() *memRepo {
	return &memRepo{orders: make(map[string]entities.Order)}
}

func (r *memRepo) SaveOrder(_ context.Context, o entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.OrderID]; ok {
		return entities.ErrOrderExists
	}
	r.orders[o.OrderID] = o
	return nil
}

func (r *memRepo) GetOrderByID(_ context.Context, orderID string) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return o, nil
}

func (r *memRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	return r.LatestOrders(ctx, math.MaxInt)
}

func (r *memRepo) LatestOrders(_ context.Context, count int) ([]entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]entities.Order, 0, len(r.orders))
	for _, o := range r.orders {
		result = append(result, o)
	}
	slices.SortFunc(result, func(a, b entities.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return result[:min(count, len(result))], nil
}

func (r *memRepo) UpdateStatus(_ context.Context, orderID string, status entities.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	o.Status = status
	r.orders[orderID] = o
	return nil
}

type noTx struct{}

func (noTx) BeginTx(ctx context.Context, _ *sql.TxOptions) (context.Context, trm.Transaction, error) {
	return ctx, nil, nil
}

func (noTx) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return callback(ctx)
}

type discardEvents struct{}

func (discardEvents) OrderCreated(context.Context, entities.Order) error { return nil }

func (discardEvents) OrderStatusChanged(context.Context, entities.Order) error { return nil }

func TestOrderService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewOrderService(logger, noTx{}, repo, cache.NewLRUCache(10, time.Minute), discardEvents{})

	placed, err := svc.PlaceOrder(ctx, validForm(), "sinta4")
	require.NoError(t, err)

	tracked, err := svc.TrackByOrderID(ctx, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusProcessing, tracked.Status)
	assert.Equal(t, "SINTA 4", tracked.Package.Name)

	updated, err := svc.UpdateStatus(ctx, placed.OrderID, entities.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, updated.Status)

	tracked, err = svc.TrackByOrderID(ctx, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, tracked.Status)

	stored, err := repo.GetOrderByID(ctx, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, stored.Status)

	// статус можно вернуть обратно, порядок переходов не ограничен
	updated, err = svc.UpdateStatus(ctx, placed.OrderID, entities.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusProcessing, updated.Status)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, placed.OrderID, all[0].OrderID)
	assert.Equal(t, placed.Package, all[0].Package)
}

func TestOrderService_TrackSeesUpdatesFromOtherReplica(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// две реплики с общей базой и своими кэшами
	a := service.NewOrderService(logger, noTx{}, repo, cache.NewLRUCache(10, time.Hour), discardEvents{})
	b := service.NewOrderService(logger, noTx{}, repo, cache.NewLRUCache(10, time.Hour), discardEvents{})

	placed, err := a.PlaceOrder(ctx, validForm(), "sinta5")
	require.NoError(t, err)

	tracked, err := b.TrackByOrderID(ctx, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusProcessing, tracked.Status)

	_, err = a.UpdateStatus(ctx, placed.OrderID, entities.StatusCompleted)
	require.NoError(t, err)

	stored, err := repo.GetOrderByID(ctx, placed.OrderID)
	require.NoError(t, err)

	tracked, err = b.TrackByOrderID(ctx, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, stored.Status, tracked.Status)
	assert.Equal(t, entities.StatusCompleted, tracked.Status)
}
