package handler

import (
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
)

// OrderRequest форма заказа
type OrderRequest struct {
	FullName     string `json:"full_name" example:"Siti Rahma"`
	Email        string `json:"email" example:"siti@example.ac.id"`
	Institution  string `json:"institution" example:"Universitas Indonesia"`
	JournalTitle string `json:"journal_title" example:"Deep Learning for Batik Classification"`
	Topic        string `json:"topic" example:"Ilmu Komputer"`
	Level        string `json:"level" example:"SINTA 5"`
	PackageID    string `json:"package_id" example:"sinta5"`
}

// Package тариф
type Package struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	DisplayPrice string `json:"display_price"`
}

// Order представляет заказ
type Order struct {
	OrderID      string    `json:"order_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Institution  string    `json:"institution"`
	JournalTitle string    `json:"journal_title"`
	Topic        string    `json:"topic"`
	Level        string    `json:"level"`
	Package      Package   `json:"package"`
	Status       string    `json:"status" enums:"Processing,Completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderStatus ответ на запрос отслеживания, без персональных данных клиента
type OrderStatus struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status" enums:"Processing,Completed"`
	Package   string    `json:"package"`
	CreatedAt time.Time `json:"created_at"`
}

// Catalog тарифы и подсказки для формы
type Catalog struct {
	Packages []Package `json:"packages"`
	Topics   []string  `json:"topics"`
	Levels   []string  `json:"levels"`
}

// LoginRequest учетные данные администратора
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse токен сессии администратора
type LoginResponse struct {
	Token string `json:"token"`
}

// StatusUpdateRequest новый статус заказа
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=Processing Completed" enums:"Processing,Completed"`
}

func OrderRequestToForm(r OrderRequest) entities.OrderForm {
	return entities.OrderForm{
		FullName:     r.FullName,
		Email:        r.Email,
		Institution:  r.Institution,
		JournalTitle: r.JournalTitle,
		Topic:        r.Topic,
		Level:        r.Level,
	}
}

func PackageEntityToJSON(p entities.Package) Package {
	return Package{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		DisplayPrice: p.DisplayPrice,
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	return Order{
		OrderID:      o.OrderID,
		FullName:     o.FullName,
		Email:        o.Email,
		Institution:  o.Institution,
		JournalTitle: o.JournalTitle,
		Topic:        o.Topic,
		Level:        o.Level,
		Package:      PackageEntityToJSON(o.Package),
		Status:       o.Status.String(),
		CreatedAt:    o.CreatedAt,
	}
}

func OrderStatusToJSON(o entities.Order) OrderStatus {
	return OrderStatus{
		OrderID:   o.OrderID,
		Status:    o.Status.String(),
		Package:   o.Package.Name,
		CreatedAt: o.CreatedAt,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(o))
	}
	return result
}

func CatalogToJSON() Catalog {
	pkgs := entities.Packages()
	result := Catalog{
		Packages: make([]Package, 0, len(pkgs)),
		Topics:   entities.Topics(),
		Levels:   entities.Levels(),
	}
	for _, p := range pkgs {
		result.Packages = append(result.Packages, PackageEntityToJSON(p))
	}
	return result
}
