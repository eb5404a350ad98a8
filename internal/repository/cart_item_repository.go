package repository

import (
	"context"

	"kommercio/internal/domain/model"

	"github.com/shopspring/decimal"
)

// カート明細に現在の商品情報を結合した行。
// 価格はスナップショットではなく商品テーブルの現在価格。
type CartLine struct {
	ID              int64
	UserID          int64
	ProductID       int64
	Quantity        int64
	ProductName     string
	ProductPrice    decimal.Decimal
	ProductImageURL string
}

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]CartLine, error)
	// 同一商品は行を増やさず数量を加算する。加算はSQL側でアトミックに行う。
	AddOrIncrement(ctx context.Context, userID int64, productID int64, qty int64) (model.CartItem, error)
	//本人所有の明細だけを返す。他人の明細はErrNotFound。
	FindOwnedByID(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	//チェックアウト完了時のカート全消去
	DeleteByUserID(ctx context.Context, userID int64) error
}
