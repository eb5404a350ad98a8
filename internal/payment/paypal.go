package payment

import (
	"context"
	"strconv"

	"github.com/plutov/paypal/v4"
	"go.uber.org/zap"
)

// PayPalGatewayはGatewayのPayPal実装（Orders v2 API）。
type PayPalGateway struct {
	client *paypal.Client
	log    *zap.Logger
}

// DI
func NewPayPalGateway(clientID string, secret string, mode string, log *zap.Logger) (*PayPalGateway, error) {
	base := paypal.APIBaseSandBox
	if mode == "live" {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, err
	}

	return &PayPalGateway{client: client, log: log}, nil
}

// 承認待ちのCAPTURE注文を作成し、承認URLを返す。
func (g *PayPalGateway) CreatePayment(ctx context.Context, in CreatePaymentInput) (CreatePaymentResult, error) {
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return CreatePaymentResult{}, NewError(err.Error())
	}

	items := make([]paypal.Item, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, paypal.Item{
			Name: it.Name,
			SKU:  it.SKU,
			UnitAmount: &paypal.Money{
				Currency: in.Currency,
				Value:    it.Price.StringFixed(2),
			},
			Quantity: strconv.FormatInt(it.Quantity, 10),
		})
	}

	units := []paypal.PurchaseUnitRequest{{
		Description: in.Description,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: in.Currency,
			Value:    in.Total.StringFixed(2),
			Breakdown: &paypal.PurchaseUnitAmountBreakdown{
				ItemTotal: &paypal.Money{
					Currency: in.Currency,
					Value:    in.Total.StringFixed(2),
				},
			},
		},
		Items: items,
	}}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, &paypal.ApplicationContext{
		ReturnURL: in.ReturnURL,
		CancelURL: in.CancelURL,
	})
	if err != nil {
		g.log.Warn("paypal create order failed", zap.Error(err))
		return CreatePaymentResult{}, NewError(err.Error())
	}

	approval := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approval = link.Href
			break
		}
	}
	if approval == "" {
		return CreatePaymentResult{}, NewError("no approval url in provider response")
	}

	g.log.Info("paypal order created", zap.String("payment_id", order.ID))

	return CreatePaymentResult{
		PaymentID:   order.ID,
		ApprovalURL: approval,
	}, nil
}

// 承認済み注文をキャプチャする。
// payerIDはOrders v2では不要だがログに残す（旧Payments APIとの互換のため受け取る）。
func (g *PayPalGateway) ExecutePayment(ctx context.Context, paymentID string, payerID string) error {
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return NewError(err.Error())
	}

	resp, err := g.client.CaptureOrder(ctx, paymentID, paypal.CaptureOrderRequest{})
	if err != nil {
		g.log.Warn("paypal capture failed",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return NewError(err.Error())
	}

	if resp.Status != "COMPLETED" {
		return NewError("capture not completed: " + resp.Status)
	}

	g.log.Info("paypal capture completed",
		zap.String("payment_id", paymentID),
		zap.String("payer_id", payerID))

	return nil
}
