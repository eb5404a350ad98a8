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

func newProductUsecaseForTest() (*ProductUsecase, *mockProductRepo, *mockAuditLogRepo) {
	products := new(mockProductRepo)
	auditLogs := new(mockAuditLogRepo)

	tx := stubTxManager{repos: stubTxRepos{
		orders:     new(mockOrderRepo),
		orderItems: new(mockOrderItemRepo),
		cartItems:  new(mockCartItemRepo),
		products:   products,
		auditLogs:  auditLogs,
	}}

	return NewProductUsecase(tx, products), products, auditLogs
}

func testVendor() *model.User {
	return &model.User{ID: 2, Email: "v@example.com", Username: "vendor", Role: model.RoleVendor}
}

func TestListProducts_DefaultPaging(t *testing.T) {
	uc, products, _ := newProductUsecaseForTest()

	products.On("ListActive", mock.Anything, repo.ProductListQuery{Skip: 0, Limit: 20}).
		Return([]model.Product{{ID: 1, Name: "Mug"}}, int64(1), nil)

	out, err := uc.ListProducts(context.Background(), ProductListInput{Limit: 0, Skip: -3})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 20, out.Limit)
	assert.Equal(t, 0, out.Skip)
}

func TestGetProduct_Inactive(t *testing.T) {
	uc, products, _ := newProductUsecaseForTest()

	products.On("FindActiveByID", mock.Anything, int64(9)).
		Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), 9)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCreateProduct_CustomerForbidden(t *testing.T) {
	uc, _, _ := newProductUsecaseForTest()

	_, err := uc.CreateProduct(context.Background(), testCustomer(), CreateProductInput{
		Name:        "Mug",
		Description: "A mug",
		Category:    "kitchen",
		Price:       decimal.RequireFromString("9.99"),
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
}

func TestCreateProduct_SetsVendorID(t *testing.T) {
	uc, products, _ := newProductUsecaseForTest()

	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.VendorID == 2 && p.IsActive && p.Name == "Mug"
	})).Return(model.Product{ID: 1, Name: "Mug", VendorID: 2, IsActive: true}, nil)

	p, err := uc.CreateProduct(context.Background(), testVendor(), CreateProductInput{
		Name:        "Mug",
		Description: "A mug",
		Category:    "kitchen",
		Price:       decimal.RequireFromString("9.99"),
		Stock:       3,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	products.AssertExpectations(t)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	uc, _, _ := newProductUsecaseForTest()

	_, err := uc.CreateProduct(context.Background(), testVendor(), CreateProductInput{
		Name:        "Mug",
		Description: "A mug",
		Category:    "kitchen",
		Price:       decimal.RequireFromString("-1"),
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestUpdateProduct_OnlyGivenFields(t *testing.T) {
	uc, products, _ := newProductUsecaseForTest()

	existing := model.Product{
		ID: 1, Name: "Mug", Description: "A mug", Category: "kitchen",
		Price: decimal.RequireFromString("9.99"), Stock: 3, VendorID: 2, IsActive: true,
	}
	products.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)

	products.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		//name以外は元の値のまま
		return p.Name == "Big Mug" &&
			p.Description == "A mug" &&
			p.Price.Equal(decimal.RequireFromString("9.99")) &&
			p.VendorID == 2
	})).Return(nil)

	name := "Big Mug"
	p, err := uc.UpdateProduct(context.Background(), testVendor(), 1, UpdateProductInput{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Big Mug", p.Name)
	products.AssertExpectations(t)
}

func TestUpdateProduct_OtherVendorForbidden(t *testing.T) {
	uc, products, _ := newProductUsecaseForTest()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, VendorID: 99}, nil)

	name := "Big Mug"
	_, err := uc.UpdateProduct(context.Background(), testVendor(), 1, UpdateProductInput{Name: &name})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 403, he.Status)
}

func TestUpdateProduct_AdminCanEditAny(t *testing.T) {
	uc, products, _ := newProductUsecaseForTest()
	admin := &model.User{ID: 1, Role: model.RoleAdmin}

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Mug", VendorID: 99}, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	name := "Renamed"
	_, err := uc.UpdateProduct(context.Background(), admin, 1, UpdateProductInput{Name: &name})

	assert.NoError(t, err)
}

func TestDeleteProduct_SoftDeletesAndAudits(t *testing.T) {
	uc, products, auditLogs := newProductUsecaseForTest()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, VendorID: 2, IsActive: true}, nil)
	products.On("SoftDelete", mock.Anything, int64(1)).Return(nil)
	auditLogs.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeactivateProduct && l.ResourceID == 1
	})).Return(nil)

	err := uc.DeleteProduct(context.Background(), testVendor(), 1)

	assert.NoError(t, err)
	products.AssertExpectations(t)
	auditLogs.AssertExpectations(t)
}
