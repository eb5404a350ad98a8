package repository

import (
	"context"

	"kommercio/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 注文明細に現在の商品名・画像を結合した行。
// 単価は明細側のスナップショットのまま。
type OrderItemDetail struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	Quantity        int64
	Price           decimal.Decimal
	ProductName     string
	ProductImageURL string
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]OrderItemDetail, error)
}
