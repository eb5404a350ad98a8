package handler

import (
	"net/http"
	"strconv"

	"kommercio/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderUsecase *usecase.OrderUsecase
}

// DI
func NewOrderHandler(orderUsecase *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
	ReturnURL     string `json:"return_url"`
	CancelURL     string `json:"cancel_url"`
}

type executePaymentRequest struct {
	PaymentID string `json:"payment_id"`
	PayerID   string `json:"payer_id"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// POST /checkout
func (h *OrderHandler) Checkout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	out, err := h.orderUsecase.Checkout(c.Request().Context(), user, usecase.CheckoutInput{
		PaymentMethod: req.PaymentMethod,
		ReturnURL:     req.ReturnURL,
		CancelURL:     req.CancelURL,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// POST /payment/execute
func (h *OrderHandler) ExecutePayment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var req executePaymentRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	out, err := h.orderUsecase.ExecutePayment(c.Request().Context(), user.ID, req.PaymentID, req.PayerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /payment/cancel
// 買い手がPayPal側でキャンセルしたときのリダイレクト先。注文は変更しない。
func (h *OrderHandler) PaymentCancelled(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "cancelled",
		"message": "Payment was cancelled by user",
	})
}

// GET /orders
func (h *OrderHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.orderUsecase.ListMyOrders(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /orders/:id
func (h *OrderHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.orderUsecase.GetOrderDetail(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// PUT /orders/:id/cancel
func (h *OrderHandler) Cancel(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.orderUsecase.Cancel(c.Request().Context(), user.ID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Order cancelled successfully"})
}

// PUT /orders/:id/status
func (h *OrderHandler) SetStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	if err := h.orderUsecase.SetStatus(c.Request().Context(), user, id, req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Order status updated successfully"})
}
