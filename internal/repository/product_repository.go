package repository

import (
	"context"
	"errors"

	"kommercio/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Skip     int
	Limit    int
	Category string
	Search   string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開中（is_active=true）のみ
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindActiveByID(ctx context.Context, id int64) (model.Product, error)

	//vendor向け。is_activeを問わず取得
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	//物理削除はしない
	SoftDelete(ctx context.Context, id int64) error
}
