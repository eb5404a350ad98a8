package repository

import (
	"context"

	"kommercio/internal/domain/model"
	repo "kommercio/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 注文明細を一括作成
func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		it.OrderID = orderID
		rows = append(rows, it)
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

// 注文明細を商品名・画像付きで取得
func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	details := []repo.OrderItemDetail{}

	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.id, order_items.order_id, order_items.product_id, order_items.quantity, order_items.price,
			products.name as product_name, products.image_url as product_image_url`).
		Joins("join products on products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id asc").
		Scan(&details).Error

	if err != nil {
		return []repo.OrderItemDetail{}, err
	}
	return details, nil
}
