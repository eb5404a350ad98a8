package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// 決済プロバイダ側の失敗。プロバイダの生エラーはそのまま外へ出さず、
// 必ずこの型に畳んでメッセージだけを運ぶ。
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "payment failed: " + e.Reason
}

func NewError(reason string) error {
	return &Error{Reason: reason}
}

type Item struct {
	Name     string
	SKU      string
	Price    decimal.Decimal
	Quantity int64
}

type CreatePaymentInput struct {
	Items       []Item
	Total       decimal.Decimal
	Currency    string
	ReturnURL   string
	CancelURL   string
	Description string
}

type CreatePaymentResult struct {
	PaymentID   string
	ApprovalURL string
}

// Gatewayは外部決済プロバイダへの約束。
// CreatePaymentは承認待ちの決済セッションを作り、
// ExecutePaymentは買い手の承認後にキャプチャする。
type Gateway interface {
	CreatePayment(ctx context.Context, in CreatePaymentInput) (CreatePaymentResult, error)
	ExecutePayment(ctx context.Context, paymentID string, payerID string) error
}
