package repository

import (
	"context"

	"kommercio/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//決済intent idで本人の注文を探す（payment execute用）
	FindByPaymentIntent(ctx context.Context, userID int64, paymentIntentID string) (model.Order, error)
	//pending_paymentは注文一覧に出さない
	ListByUserID(ctx context.Context, userID int64, skip int, limit int) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	//現在ステータスがfromの場合だけtoへ更新する。対象0件ならErrNotFound。
	UpdateStatusFrom(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) error
}
