package repo

import (
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
)

var orderColumns = []string{
	"order_id", "full_name", "email", "institution", "journal_title", "topic", "level",
	"package_id", "package_name", "package_price", "package_price_display",
	"status", "created_at",
}

type Order struct {
	OrderID      string    `db:"order_id"`
	FullName     string    `db:"full_name"`
	Email        string    `db:"email"`
	Institution  string    `db:"institution"`
	JournalTitle string    `db:"journal_title"`
	Topic        string    `db:"topic"`
	Level        string    `db:"level"`
	PackageID    string    `db:"package_id"`
	PackageName  string    `db:"package_name"`
	PackagePrice int64     `db:"package_price"`
	PriceDisplay string    `db:"package_price_display"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

func OrderToEntity(o Order) entities.Order {
	return entities.Order{
		OrderID:      o.OrderID,
		FullName:     o.FullName,
		Email:        o.Email,
		Institution:  o.Institution,
		JournalTitle: o.JournalTitle,
		Topic:        o.Topic,
		Level:        o.Level,
		Package: entities.Package{
			ID:           o.PackageID,
			Name:         o.PackageName,
			Price:        o.PackagePrice,
			DisplayPrice: o.PriceDisplay,
		},
		Status:    entities.Status(o.Status),
		CreatedAt: o.CreatedAt.UTC(),
	}
}

func OrdersToEntities(orders []Order) []entities.Order {
	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o))
	}
	return result
}
