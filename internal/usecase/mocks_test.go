package usecase

import (
	"context"

	"kommercio/internal/domain/model"
	"kommercio/internal/payment"
	repo "kommercio/internal/repository"

	"github.com/stretchr/testify/mock"
)

// ---- UserRepository ----

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmailAndID(ctx context.Context, email string, userID int64) (*model.User, error) {
	args := m.Called(ctx, email, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// ---- ProductRepository ----

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) ListActive(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) FindActiveByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ---- CartItemRepository ----

type mockCartItemRepo struct {
	mock.Mock
}

func (m *mockCartItemRepo) ListByUserID(ctx context.Context, userID int64) ([]repo.CartLine, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]repo.CartLine), args.Error(1)
}

func (m *mockCartItemRepo) AddOrIncrement(ctx context.Context, userID int64, productID int64, qty int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, productID, qty)
	return args.Get(0).(model.CartItem), args.Error(1)
}

func (m *mockCartItemRepo) FindOwnedByID(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Get(0).(model.CartItem), args.Error(1)
}

func (m *mockCartItemRepo) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *mockCartItemRepo) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *mockCartItemRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ---- OrderRepository ----

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) FindByPaymentIntent(ctx context.Context, userID int64, paymentIntentID string) (model.Order, error) {
	args := m.Called(ctx, userID, paymentIntentID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByUserID(ctx context.Context, userID int64, skip int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, skip, limit)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *mockOrderRepo) UpdateStatusFrom(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) error {
	args := m.Called(ctx, orderID, from, to)
	return args.Error(0)
}

// ---- OrderItemRepository ----

type mockOrderItemRepo struct {
	mock.Mock
}

func (m *mockOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *mockOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]repo.OrderItemDetail), args.Error(1)
}

// ---- AuditLogRepository ----

type mockAuditLogRepo struct {
	mock.Mock
}

func (m *mockAuditLogRepo) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// ---- TransactionManager ----

// トランザクションは張らず、そのままfnを実行する。
type stubTxRepos struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	cartItems  repo.CartItemRepository
	products   repo.ProductRepository
	auditLogs  repo.AuditLogRepository
}

func (s stubTxRepos) Orders() repo.OrderRepository         { return s.orders }
func (s stubTxRepos) OrderItems() repo.OrderItemRepository { return s.orderItems }
func (s stubTxRepos) CartItems() repo.CartItemRepository   { return s.cartItems }
func (s stubTxRepos) Products() repo.ProductRepository     { return s.products }
func (s stubTxRepos) AuditLogs() repo.AuditLogRepository   { return s.auditLogs }

type stubTxManager struct {
	repos stubTxRepos
}

func (s stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}

// ---- payment.Gateway ----

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePayment(ctx context.Context, in payment.CreatePaymentInput) (payment.CreatePaymentResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(payment.CreatePaymentResult), args.Error(1)
}

func (m *mockGateway) ExecutePayment(ctx context.Context, paymentID string, payerID string) error {
	args := m.Called(ctx, paymentID, payerID)
	return args.Error(0)
}

// ---- AuthValidator ----

// テストでは素通しのvalidatorを使う
type passValidator struct{}

func (passValidator) ValidateSignup(ctx context.Context, email string, username string, password string) error {
	return nil
}

func (passValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	return nil
}
