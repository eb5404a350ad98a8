package usecase

import (
	"context"
	"testing"

	"kommercio/internal/domain/model"
	repo "kommercio/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetCart_TotalIsExact(t *testing.T) {
	lines := []repo.CartLine{
		{ID: 1, UserID: 5, ProductID: 10, Quantity: 2, ProductName: "Mug", ProductPrice: decimal.RequireFromString("9.99")},
		{ID: 2, UserID: 5, ProductID: 11, Quantity: 1, ProductName: "Pen", ProductPrice: decimal.RequireFromString("5.00")},
	}

	cartItems := new(mockCartItemRepo)
	cartItems.On("ListByUserID", mock.Anything, int64(5)).Return(lines, nil)

	uc := NewCartUsecase(cartItems, new(mockProductRepo))

	cart, err := uc.GetCart(context.Background(), 5)

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	//9.99*2 + 5.00 = 24.98（floatの丸めなし）
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("24.98")), "total = %s", cart.Total)
}

func TestAddItem_DefaultsQuantityToOne(t *testing.T) {
	p := model.Product{ID: 10, Name: "Mug", Price: decimal.RequireFromString("9.99"), IsActive: true}

	products := new(mockProductRepo)
	products.On("FindActiveByID", mock.Anything, int64(10)).Return(p, nil)

	cartItems := new(mockCartItemRepo)
	cartItems.On("AddOrIncrement", mock.Anything, int64(5), int64(10), int64(1)).
		Return(model.CartItem{ID: 1, UserID: 5, ProductID: 10, Quantity: 1}, nil)

	uc := NewCartUsecase(cartItems, products)

	item, err := uc.AddItem(context.Background(), 5, AddCartItemInput{ProductID: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), item.Quantity)
	assert.Equal(t, "Mug", item.Product.Name)
	cartItems.AssertExpectations(t)
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	p := model.Product{ID: 10, Name: "Mug", Price: decimal.RequireFromString("9.99"), IsActive: true}

	products := new(mockProductRepo)
	products.On("FindActiveByID", mock.Anything, int64(10)).Return(p, nil)

	//2個持っているところに3個追加 → 同一行で数量5
	cartItems := new(mockCartItemRepo)
	cartItems.On("AddOrIncrement", mock.Anything, int64(5), int64(10), int64(3)).
		Return(model.CartItem{ID: 1, UserID: 5, ProductID: 10, Quantity: 5}, nil)

	uc := NewCartUsecase(cartItems, products)

	item, err := uc.AddItem(context.Background(), 5, AddCartItemInput{ProductID: 10, Quantity: 3})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, int64(5), item.Quantity)
}

func TestAddItem_InactiveProduct(t *testing.T) {
	products := new(mockProductRepo)
	products.On("FindActiveByID", mock.Anything, int64(99)).
		Return(model.Product{}, repo.ErrNotFound)

	uc := NewCartUsecase(new(mockCartItemRepo), products)

	_, err := uc.AddItem(context.Background(), 5, AddCartItemInput{ProductID: 99})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestAddItem_NegativeQuantity(t *testing.T) {
	uc := NewCartUsecase(new(mockCartItemRepo), new(mockProductRepo))

	_, err := uc.AddItem(context.Background(), 5, AddCartItemInput{ProductID: 10, Quantity: -1})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestUpdateItem_ZeroQuantityRemoves(t *testing.T) {
	cartItems := new(mockCartItemRepo)
	cartItems.On("FindOwnedByID", mock.Anything, int64(1), int64(5)).
		Return(model.CartItem{ID: 1, UserID: 5, ProductID: 10, Quantity: 2}, nil)
	cartItems.On("DeleteByID", mock.Anything, int64(1)).Return(nil)
	cartItems.On("ListByUserID", mock.Anything, int64(5)).Return([]repo.CartLine{}, nil)

	uc := NewCartUsecase(cartItems, new(mockProductRepo))

	cart, err := uc.UpdateItem(context.Background(), 5, 1, UpdateCartItemInput{Quantity: 0})

	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	cartItems.AssertExpectations(t)
}

func TestUpdateItem_NotOwned(t *testing.T) {
	cartItems := new(mockCartItemRepo)
	cartItems.On("FindOwnedByID", mock.Anything, int64(1), int64(5)).
		Return(model.CartItem{}, repo.ErrNotFound)

	uc := NewCartUsecase(cartItems, new(mockProductRepo))

	_, err := uc.UpdateItem(context.Background(), 5, 1, UpdateCartItemInput{Quantity: 3})

	//他人の明細は存在しない扱い
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestRemoveItem_ReturnsRemainingCart(t *testing.T) {
	remaining := []repo.CartLine{
		{ID: 2, UserID: 5, ProductID: 11, Quantity: 1, ProductName: "Pen", ProductPrice: decimal.RequireFromString("5.00")},
	}

	cartItems := new(mockCartItemRepo)
	cartItems.On("FindOwnedByID", mock.Anything, int64(1), int64(5)).
		Return(model.CartItem{ID: 1, UserID: 5, ProductID: 10, Quantity: 2}, nil)
	cartItems.On("DeleteByID", mock.Anything, int64(1)).Return(nil)
	cartItems.On("ListByUserID", mock.Anything, int64(5)).Return(remaining, nil)

	uc := NewCartUsecase(cartItems, new(mockProductRepo))

	cart, err := uc.RemoveItem(context.Background(), 5, 1)

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("5.00")))
}
