package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/pkg/trm"
	"github.com/go-playground/validator/v10"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.Status) error
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type EventPublisher interface {
	OrderCreated(ctx context.Context, order entities.Order) error
	OrderStatusChanged(ctx context.Context, order entities.Order) error
}

type orderService struct {
	logger    *slog.Logger
	validate  *validator.Validate
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	events    EventPublisher
	now       func() time.Time
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, cache Cache, events EventPublisher) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		validate:  newFormValidator(),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		events:    events,
		now:       time.Now,
	}
}

// CreateOrder собирает новый заказ из уже провалидированной формы
func (s *orderService) CreateOrder(form entities.OrderForm, pkg entities.Package) entities.Order {
	return entities.Order{
		OrderID:      entities.NewOrderID(),
		FullName:     form.FullName,
		Email:        form.Email,
		Institution:  form.Institution,
		JournalTitle: form.JournalTitle,
		Topic:        form.Topic,
		Level:        form.Level,
		Package:      pkg,
		Status:       entities.StatusProcessing,
		CreatedAt:    s.now().UTC(),
	}
}

// Submit сохраняет заказ. Повторов нет: при ошибке клиент отправляет форму заново.
func (s *orderService) Submit(ctx context.Context, order entities.Order) error {
	if err := s.repo.SaveOrder(ctx, order); err != nil {
		ordersFailed.Inc()
		return fmt.Errorf("%w: %w", entities.ErrSubmit, err)
	}
	ordersPlaced.WithLabelValues(order.Package.ID).Inc()
	s.logger.DebugContext(ctx, "order submitted", slog.String("order_id", order.OrderID))

	s.cacheOrder(order)

	if err := s.events.OrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order created event",
			slog.Any("error", err), slog.String("order_id", order.OrderID))
	}
	return nil
}

// PlaceOrder проверяет форму и тариф, создает и сохраняет заказ
func (s *orderService) PlaceOrder(ctx context.Context, form entities.OrderForm, packageID string) (entities.Order, error) {
	form = normalizeForm(form)

	fields := s.Validate(form)
	pkg, ok := entities.FindPackage(packageID)
	if !ok {
		if fields == nil {
			fields = make(entities.FieldErrors, 1)
		}
		fields["package_id"] = "unknown package"
	}
	if len(fields) > 0 {
		return entities.Order{}, fields
	}

	order := s.CreateOrder(form, pkg)
	if err := s.Submit(ctx, order); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// TrackByOrderID читает заказ из базы. Кэш процесса не знает об изменениях,
// сделанных другими репликами, поэтому отдается только когда база недоступна.
func (s *orderService) TrackByOrderID(ctx context.Context, orderID string) (entities.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if errors.Is(err, entities.ErrOrderNotFound) {
		s.cache.Delete(orderID)
		return entities.Order{}, err
	}
	if err != nil {
		if cached, ok := s.cachedOrder(ctx, orderID); ok {
			s.logger.WarnContext(ctx, "store lookup failed, serving cached order",
				slog.Any("error", err), slog.String("order_id", orderID))
			return cached, nil
		}
		return entities.Order{}, fmt.Errorf("%w: %w", entities.ErrLookup, err)
	}

	s.cacheOrder(order)
	return order, nil
}

func (s *orderService) cachedOrder(ctx context.Context, orderID string) (entities.Order, bool) {
	data, ok := s.cache.Get(orderID)
	if !ok {
		return entities.Order{}, false
	}
	var order entities.Order
	if err := order.Unmarshal(data); err != nil {
		// битую запись выкидываем
		s.logger.ErrorContext(ctx, "failed to unmarshal cached order", slog.Any("error", err), slog.String("order_id", orderID))
		s.cache.Delete(orderID)
		return entities.Order{}, false
	}
	return order, true
}

func (s *orderService) ListAll(ctx context.Context) ([]entities.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrLookup, err)
	}
	return orders, nil
}

// UpdateStatus меняет статус и возвращает заказ, перечитанный в той же транзакции,
// чтобы ответ не расходился с базой при нескольких администраторах.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status entities.Status) (entities.Order, error) {
	if !status.Valid() {
		return entities.Order{}, fmt.Errorf("%w: %q", entities.ErrInvalidStatus, status)
	}

	var order entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	})
	if errors.Is(err, entities.ErrOrderNotFound) {
		return entities.Order{}, err
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("%w: %w", entities.ErrUpdate, err)
	}

	statusUpdates.WithLabelValues(status.String()).Inc()
	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", orderID), slog.String("status", status.String()))

	s.cacheOrder(order)

	if err := s.events.OrderStatusChanged(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish status changed event",
			slog.Any("error", err), slog.String("order_id", orderID))
	}
	return order, nil
}

// WarmUpCache загружает в кэш последние count заказов
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}
	orders, err := s.repo.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to load latest orders: %w", err)
	}
	for _, order := range orders {
		s.cacheOrder(order)
	}
	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

func (s *orderService) cacheOrder(order entities.Order) {
	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.Any("error", err), slog.String("order_id", order.OrderID))
		s.cache.Delete(order.OrderID)
		return
	}
	s.cache.Set(order.OrderID, data)
}

func normalizeForm(f entities.OrderForm) entities.OrderForm {
	return entities.OrderForm{
		FullName:     strings.TrimSpace(f.FullName),
		Email:        strings.TrimSpace(f.Email),
		Institution:  strings.TrimSpace(f.Institution),
		JournalTitle: strings.TrimSpace(f.JournalTitle),
		Topic:        strings.TrimSpace(f.Topic),
		Level:        strings.TrimSpace(f.Level),
	}
}
