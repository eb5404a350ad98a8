package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kommercio/internal/domain/model"
	"kommercio/internal/payment"
	repo "kommercio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderUsecaseは注文の状態遷移を司る。
// pending_payment → created → confirmed → shipped → delivered、
// cancelledはpending_payment/createdからのみ。
type OrderUsecase struct {
	tx          repo.TransactionManager
	orders      repo.OrderRepository
	cartItems   repo.CartItemRepository
	gateway     payment.Gateway // nilならmock決済のみ
	frontendURL string
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	cartItems repo.CartItemRepository,
	gateway payment.Gateway,
	frontendURL string,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		orders:      orders,
		cartItems:   cartItems,
		gateway:     gateway,
		frontendURL: frontendURL,
	}
}

type CheckoutInput struct {
	PaymentMethod string
	ReturnURL     string
	CancelURL     string
}

type CheckoutOutput struct {
	OrderID         int64           `json:"order_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status,omitempty"`
	PaymentID       string          `json:"payment_id,omitempty"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty"`
	ApprovalURL     string          `json:"approval_url,omitempty"`
}

type ExecutePaymentOutput struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id"`
	OrderID   int64  `json:"order_id"`
	Message   string `json:"message"`
}

type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	PaymentIntentID string              `json:"payment_intent_id"`
	CreatedAt       time.Time           `json:"created_at"`
	ItemCount       int                 `json:"item_count"`
	Items           []OrderItemResponse `json:"items"`
}

type OrderListOutput struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Skip   int             `json:"skip"`
	Limit  int             `json:"limit"`
}

// Checkoutはカートの現時点のスナップショットから注文を作る。
// paypal: 承認待ちセッションを作りpending_paymentで保存。カートは決済完了まで残す。
// それ以外: そのままcreatedで保存し、同一トランザクションでカートを空にする。
func (u *OrderUsecase) Checkout(ctx context.Context, user *model.User, in CheckoutInput) (*CheckoutOutput, error) {
	lines, err := u.cartItems.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, NewInternalError()
	}
	if len(lines) == 0 {
		return nil, NewValidationError("cart is empty")
	}

	total := decimal.Zero
	for _, ln := range lines {
		total = total.Add(ln.ProductPrice.Mul(decimal.NewFromInt(ln.Quantity)))
	}

	if in.PaymentMethod == "paypal" && u.gateway != nil {
		return u.checkoutWithGateway(ctx, user, lines, total, in)
	}
	return u.checkoutMock(ctx, user.ID, lines, total)
}

// PayPal経由。ゲートウェイ呼び出しはトランザクションの外で行う。
func (u *OrderUsecase) checkoutWithGateway(
	ctx context.Context,
	user *model.User,
	lines []repo.CartLine,
	total decimal.Decimal,
	in CheckoutInput,
) (*CheckoutOutput, error) {
	returnURL := in.ReturnURL
	if returnURL == "" {
		returnURL = u.frontendURL + "/payment/success"
	}
	cancelURL := in.CancelURL
	if cancelURL == "" {
		cancelURL = u.frontendURL + "/payment/cancel"
	}

	payItems := make([]payment.Item, 0, len(lines))
	for _, ln := range lines {
		payItems = append(payItems, payment.Item{
			Name:     ln.ProductName,
			SKU:      decimal.NewFromInt(ln.ProductID).String(),
			Price:    ln.ProductPrice,
			Quantity: ln.Quantity,
		})
	}

	res, err := u.gateway.CreatePayment(ctx, payment.CreatePaymentInput{
		Items:       payItems,
		Total:       total,
		Currency:    "USD",
		ReturnURL:   returnURL,
		CancelURL:   cancelURL,
		Description: "Order for " + user.Username,
	})
	if err != nil {
		return nil, asPaymentError(err)
	}

	var orderID int64

	//注文＋明細スナップショット。カートはまだ消さない。
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, model.Order{
			UserID:          user.ID,
			TotalAmount:     total,
			PaymentIntentID: res.PaymentID,
			Status:          model.OrderStatusPendingPayment,
		})
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, id, snapshotItems(lines)); err != nil {
			return err
		}

		orderID = id
		return nil
	})
	if err != nil {
		return nil, NewInternalError()
	}

	return &CheckoutOutput{
		OrderID:     orderID,
		TotalAmount: total,
		PaymentID:   res.PaymentID,
		ApprovalURL: res.ApprovalURL,
	}, nil
}

// mock決済。注文作成とカート消去を1トランザクションで行う。
func (u *OrderUsecase) checkoutMock(
	ctx context.Context,
	userID int64,
	lines []repo.CartLine,
	total decimal.Decimal,
) (*CheckoutOutput, error) {
	intentID := "mock_" + uuid.NewString()
	var orderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			TotalAmount:     total,
			PaymentIntentID: intentID,
			Status:          model.OrderStatusCreated,
		})
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, id, snapshotItems(lines)); err != nil {
			return err
		}

		if err := r.CartItems().DeleteByUserID(ctx, userID); err != nil {
			return err
		}

		orderID = id
		return nil
	})
	if err != nil {
		return nil, NewInternalError()
	}

	return &CheckoutOutput{
		OrderID:         orderID,
		TotalAmount:     total,
		PaymentIntentID: intentID,
		Status:          string(model.OrderStatusCreated),
	}, nil
}

// ExecutePaymentは承認済み決済をキャプチャし、
// pending_payment → created へ遷移させてカートを空にする。
// ゲートウェイ失敗時は注文を一切変更しない。
func (u *OrderUsecase) ExecutePayment(ctx context.Context, userID int64, paymentID string, payerID string) (*ExecutePaymentOutput, error) {
	if paymentID == "" || payerID == "" {
		return nil, NewValidationError("payment id and payer id are required")
	}
	if u.gateway == nil {
		return nil, NewPaymentError("payment gateway is not configured")
	}

	order, err := u.orders.FindByPaymentIntent(ctx, userID, paymentID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, NewInternalError()
	}
	if order.Status != model.OrderStatusPendingPayment {
		return nil, NewStateError("order is not awaiting payment")
	}

	//キャプチャ。失敗ならここで終わり（注文はpending_paymentのまま）。
	if err := u.gateway.ExecutePayment(ctx, paymentID, payerID); err != nil {
		return nil, asPaymentError(err)
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().UpdateStatusFrom(ctx, order.ID, model.OrderStatusPendingPayment, model.OrderStatusCreated); err != nil {
			return err
		}
		return r.CartItems().DeleteByUserID(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewStateError("order is not awaiting payment")
		}
		return nil, NewInternalError()
	}

	return &ExecutePaymentOutput{
		Status:    "success",
		PaymentID: paymentID,
		OrderID:   order.ID,
		Message:   "Payment completed successfully",
	}, nil
}

// Cancelはユーザー自身による注文キャンセル。
// created / pending_payment 以外からはキャンセルできない。
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) error {
	if orderID <= 0 {
		return NewValidationError("invalid id")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("order not found")
	}
	if err != nil {
		return NewInternalError()
	}

	//他人の注文は「存在しない扱い」にする
	if order.UserID != userID {
		return NewNotFoundError("order not found")
	}

	if !order.Status.Cancellable() {
		return NewStateError("cannot cancel order in status " + string(order.Status))
	}

	//読み取り後に状態が変わっても遷移元一致を条件に更新する
	err = u.orders.UpdateStatusFrom(ctx, orderID, order.Status, model.OrderStatusCancelled)
	if errors.Is(err, repo.ErrNotFound) {
		return NewStateError("cannot cancel order")
	}
	if err != nil {
		return NewInternalError()
	}

	return nil
}

// SetStatusはvendor/adminによるステータス上書き。
// 列挙集合のチェックのみで、遷移表による制限はかけていない。
// TODO: 遷移表を導入してshipped→createdのような逆行を拒否する
func (u *OrderUsecase) SetStatus(ctx context.Context, actor *model.User, orderID int64, newStatus string) error {
	if actor.Role != model.RoleVendor && actor.Role != model.RoleAdmin {
		return NewForbiddenError("not authorized to update order status")
	}

	status := model.OrderStatus(newStatus)
	if !status.Valid() {
		return NewValidationError("invalid status")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("order not found")
	}
	if err != nil {
		return NewInternalError()
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().UpdateStatus(ctx, order.ID, status); err != nil {
			return err
		}

		//上書きは監査ログに残す
		before, _ := json.Marshal(map[string]string{"status": string(order.Status)})
		after, _ := json.Marshal(map[string]string{"status": string(status)})

		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   order.ID,
			BeforeJSON:   string(before),
			AfterJSON:    string(after),
			CreatedAt:    time.Now(),
		})
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order not found")
		}
		return NewInternalError()
	}

	return nil
}

// ListMyOrdersは自分の注文一覧（pending_paymentは含まない）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, skip int, limit int) (*OrderListOutput, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, skip, limit)
		if err != nil {
			return err
		}

		resp := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return err
			}
			resp = append(resp, toOrderResponse(o, items))
		}

		out = OrderListOutput{
			Orders: resp,
			Total:  total,
			Skip:   skip,
			Limit:  limit,
		}
		return nil
	})
	if err != nil {
		return nil, NewInternalError()
	}

	return &out, nil
}

// GetOrderDetailは自分の注文の詳細。
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, orderID int64) (*OrderResponse, error) {
	if orderID <= 0 {
		return nil, NewValidationError("invalid id")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, NewInternalError()
	}
	if order.UserID != userID {
		return nil, NewNotFoundError("order not found")
	}

	items, err := u.orderItemsOf(ctx, order.ID)
	if err != nil {
		return nil, NewInternalError()
	}

	resp := toOrderResponse(order, items)
	return &resp, nil
}

func (u *OrderUsecase) orderItemsOf(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	var items []repo.OrderItemDetail
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		items, err = r.OrderItems().ListByOrderID(ctx, orderID)
		return err
	})
	return items, err
}

// カート明細を注文明細スナップショットへ。単価はこの瞬間の商品価格で固定。
func snapshotItems(lines []repo.CartLine) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(lines))
	for _, ln := range lines {
		items = append(items, model.OrderItem{
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
			Price:     ln.ProductPrice,
		})
	}
	return items
}

func toOrderResponse(o model.Order, items []repo.OrderItemDetail) OrderResponse {
	respItems := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		respItems = append(respItems, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			Price:       it.Price,
			ProductName: it.ProductName,
			ImageURL:    it.ProductImageURL,
		})
	}

	return OrderResponse{
		ID:              o.ID,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PaymentIntentID: o.PaymentIntentID,
		CreatedAt:       o.CreatedAt,
		ItemCount:       len(respItems),
		Items:           respItems,
	}
}

// gatewayのエラーをPaymentErrorへ。プロバイダのメッセージを運ぶ。
func asPaymentError(err error) error {
	var pe *payment.Error
	if errors.As(err, &pe) {
		return NewPaymentError(pe.Reason)
	}
	return NewPaymentError(err.Error())
}
