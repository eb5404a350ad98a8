package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"kommercio/internal/domain/model"
	repo "kommercio/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
}

// DI
func NewProductUsecase(tx repo.TransactionManager, products repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{tx: tx, products: products}
}

type ProductListInput struct {
	Skip     int
	Limit    int
	Category string
	Search   string
}

type ProductListOutput struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
	Skip     int             `json:"skip"`
	Limit    int             `json:"limit"`
}

type CreateProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
}

// 更新は指定されたフィールドだけを反映する。
// vendor_id / is_active はここからは変更できない。
type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int64           `json:"stock"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url"`
}

// ListProductsは公開中の商品一覧。
func (u *ProductUsecase) ListProducts(ctx context.Context, in ProductListInput) (*ProductListOutput, error) {
	if in.Skip < 0 {
		in.Skip = 0
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	products, total, err := u.products.ListActive(ctx, repo.ProductListQuery{
		Skip:     in.Skip,
		Limit:    in.Limit,
		Category: in.Category,
		Search:   in.Search,
	})
	if err != nil {
		return nil, NewInternalError()
	}

	return &ProductListOutput{
		Products: products,
		Total:    total,
		Skip:     in.Skip,
		Limit:    in.Limit,
	}, nil
}

// GetProductは公開中の商品詳細。非公開はNOT_FOUND。
func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid id")
	}

	p, err := u.products.FindActiveByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewNotFoundError("product not found")
	}
	if err != nil {
		return nil, NewInternalError()
	}
	return &p, nil
}

// CreateProductはvendor/adminのみ。作成者がvendorになる。
func (u *ProductUsecase) CreateProduct(ctx context.Context, actor *model.User, in CreateProductInput) (*model.Product, error) {
	if actor.Role != model.RoleVendor && actor.Role != model.RoleAdmin {
		return nil, NewForbiddenError("not authorized to create products")
	}

	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Category) == "" {
		return nil, NewValidationError("name, description and category are required")
	}
	if in.Price.IsNegative() {
		return nil, NewValidationError("price must not be negative")
	}
	if in.Stock < 0 {
		return nil, NewValidationError("stock must not be negative")
	}

	p, err := u.products.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		VendorID:    actor.ID,
		IsActive:    true,
	})
	if err != nil {
		return nil, NewInternalError()
	}
	return &p, nil
}

// UpdateProductは所有vendorまたはadminのみ。
// 指定フィールドだけを上書きする。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, actor *model.User, id int64, in UpdateProductInput) (*model.Product, error) {
	if id <= 0 {
		return nil, NewValidationError("invalid id")
	}

	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewNotFoundError("product not found")
	}
	if err != nil {
		return nil, NewInternalError()
	}

	if err := u.authorizeVendor(actor, p); err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, NewValidationError("name must not be empty")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, NewValidationError("price must not be negative")
		}
		p.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, NewValidationError("stock must not be negative")
		}
		p.Stock = *in.Stock
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}

	if err := u.products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFoundError("product not found")
		}
		return nil, NewInternalError()
	}
	return &p, nil
}

// DeleteProductはソフトデリート（is_active=false）。監査ログも残す。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, actor *model.User, id int64) error {
	if id <= 0 {
		return NewValidationError("invalid id")
	}

	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("product not found")
	}
	if err != nil {
		return NewInternalError()
	}

	if err := u.authorizeVendor(actor, p); err != nil {
		return err
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().SoftDelete(ctx, p.ID); err != nil {
			return err
		}

		before, _ := json.Marshal(map[string]bool{"is_active": true})
		after, _ := json.Marshal(map[string]bool{"is_active": false})

		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionDeactivateProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   p.ID,
			BeforeJSON:   string(before),
			AfterJSON:    string(after),
			CreatedAt:    time.Now(),
		})
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("product not found")
		}
		return NewInternalError()
	}
	return nil
}

// adminは全商品、vendorは自分の商品のみ操作できる
func (u *ProductUsecase) authorizeVendor(actor *model.User, p model.Product) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.Role == model.RoleVendor && p.VendorID == actor.ID {
		return nil
	}
	return NewForbiddenError("not authorized to manage this product")
}
