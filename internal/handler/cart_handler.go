package handler

import (
	"net/http"

	"kommercio/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartUsecase *usecase.CartUsecase
}

// DI
func NewCartHandler(cartUsecase *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase}
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// GET /cart
func (h *CartHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	cart, err := h.cartUsecase.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}

// POST /cart/items
func (h *CartHandler) AddItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	item, err := h.cartUsecase.AddItem(c.Request().Context(), user.ID, usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, item)
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	cart, err := h.cartUsecase.UpdateItem(c.Request().Context(), user.ID, id, usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}

	cart, err := h.cartUsecase.RemoveItem(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}
