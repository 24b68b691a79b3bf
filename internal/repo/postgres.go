package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	ordersTable = "orders"

	uniqueViolation = "23505"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert(ordersTable).
		Columns(orderColumns...).
		Values(
			o.OrderID, o.FullName, o.Email, o.Institution, o.JournalTitle, o.Topic, o.Level,
			o.Package.ID, o.Package.Name, o.Package.Price, o.Package.DisplayPrice,
			string(o.Status), o.CreatedAt,
		).
		MustSql()

	_, err := trm.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, args...)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return entities.ErrOrderExists
	}
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var order Order
	err := trm.ExecutorFromContext(ctx, r.db).GetContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return OrderToEntity(order), nil
}

func (r *postgresRepo) ListOrders(ctx context.Context) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From(ordersTable).
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := trm.ExecutorFromContext(ctx, r.db).SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	return OrdersToEntities(orders), nil
}

// LatestOrders возвращает count последних заказов, используется для прогрева кэша
func (r *postgresRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	if count <= 0 {
		return []entities.Order{}, nil
	}

	query, args := r.qb.Select(orderColumns...).
		From(ordersTable).
		OrderBy("created_at DESC").
		Limit(uint64(count)).
		MustSql()

	var orders []Order
	if err := trm.ExecutorFromContext(ctx, r.db).SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select latest orders: %w", err)
	}
	return OrdersToEntities(orders), nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID string, status entities.Status) error {
	query, args := r.qb.Update(ordersTable).
		Set("status", string(status)).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	res, err := trm.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}
