package usecase

import (
	"context"
	"errors"

	repo "kommercio/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// カートは所有ユーザーにしか見えない。明細の価格は常に商品の現在価格。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(cartItemRepo repo.CartItemRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartProductResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

type CartItemResponse struct {
	ID        int64               `json:"id"`
	ProductID int64               `json:"product_id"`
	Quantity  int64               `json:"quantity"`
	Product   CartProductResponse `json:"product"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int                `json:"item_count"`
}

type AddCartItemInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得。空なら total=0 の空リストを返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	lines, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewInternalError()
	}

	return buildCartResponse(lines), nil
}

// AddItem はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartItemInput) (CartItemResponse, error) {
	if in.ProductID <= 0 {
		return CartItemResponse{}, NewValidationError("product id is required")
	}

	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return CartItemResponse{}, NewValidationError("invalid quantity")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindActiveByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemResponse{}, NewNotFoundError("product not found")
	}
	if err != nil {
		return CartItemResponse{}, NewInternalError()
	}

	// Upsert（同一商品は加算）。加算はDB側でアトミック。
	item, err := u.cartItemRepo.AddOrIncrement(ctx, userID, in.ProductID, qty)
	if err != nil {
		return CartItemResponse{}, NewInternalError()
	}

	return CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Product: CartProductResponse{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
		},
	}, nil
}

// 数量変更（所有チェックあり）。0以下は削除扱い。
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if cartItemID <= 0 {
		return CartResponse{}, NewValidationError("invalid id")
	}

	_, err := u.cartItemRepo.FindOwnedByID(ctx, cartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewNotFoundError("cart item not found")
	}
	if err != nil {
		return CartResponse{}, NewInternalError()
	}

	if in.Quantity <= 0 {
		//数量0以下は削除（エラーにしない）
		if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewInternalError()
		}
	} else {
		if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return CartResponse{}, NewNotFoundError("cart item not found")
			}
			return CartResponse{}, NewInternalError()
		}
	}

	return u.GetCart(ctx, userID)
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if cartItemID <= 0 {
		return CartResponse{}, NewValidationError("invalid id")
	}

	_, err := u.cartItemRepo.FindOwnedByID(ctx, cartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewNotFoundError("cart item not found")
	}
	if err != nil {
		return CartResponse{}, NewInternalError()
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewNotFoundError("cart item not found")
		}
		return CartResponse{}, NewInternalError()
	}

	return u.GetCart(ctx, userID)
}

// 明細からCartResponseを作る。合計はdecimalで計算する（floatの丸め誤差を避ける）。
func buildCartResponse(lines []repo.CartLine) CartResponse {
	items := make([]CartItemResponse, 0, len(lines))
	total := decimal.Zero

	for _, ln := range lines {
		items = append(items, CartItemResponse{
			ID:        ln.ID,
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
			Product: CartProductResponse{
				ID:       ln.ProductID,
				Name:     ln.ProductName,
				Price:    ln.ProductPrice,
				ImageURL: ln.ProductImageURL,
			},
		})

		total = total.Add(ln.ProductPrice.Mul(decimal.NewFromInt(ln.Quantity)))
	}

	return CartResponse{
		Items:     items,
		Total:     total,
		ItemCount: len(items),
	}
}
