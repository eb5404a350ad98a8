package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	// 決済ゲートウェイの承認待ち。注文一覧には出さない。
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusCreated        OrderStatus = "created"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// 文字列がステータスとして有効か
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusCreated, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ユーザー自身がキャンセルできるのは created / pending_payment のみ
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusCreated || s == OrderStatusPendingPayment
}

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	PaymentIntentID string          `gorm:"type:varchar(255);not null;index" json:"payment_intent_id"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index;default:'created'" json:"status"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
