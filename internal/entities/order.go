package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// OrderForm поля формы заказа, которые заполняет клиент
type OrderForm struct {
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,basic_email"`
	Institution  string `json:"institution" validate:"required"`
	JournalTitle string `json:"journal_title" validate:"required"`
	Topic        string `json:"topic" validate:"required"`
	Level        string `json:"level" validate:"required"`
}

type Order struct {
	OrderID      string
	FullName     string
	Email        string
	Institution  string
	JournalTitle string
	Topic        string
	Level        string

	// снимок тарифа на момент оформления, а не ссылка на каталог
	Package Package

	Status    Status
	CreatedAt time.Time
}

const orderIDPrefix = "ORD-"

func NewOrderID() string {
	return fmt.Sprintf("%s%s", orderIDPrefix, uuid.NewString())
}
