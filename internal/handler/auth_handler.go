package handler

import (
	"net/http"

	"kommercio/internal/domain/model"
	"kommercio/internal/middleware"
	"kommercio/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authUsecase *usecase.AuthUsecase
}

// DI
func NewAuthHandler(authUsecase *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type updateProfileRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// POST /auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	out, err := h.authUsecase.Signup(c.Request().Context(), usecase.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// POST /auth/token
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	pair, err := h.authUsecase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, pair)
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	pair, err := h.authUsecase.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, pair)
}

// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, usecase.UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
	})
}

// PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	dto, err := h.authUsecase.UpdateProfile(c.Request().Context(), user, usecase.UpdateProfileInput{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto)
}

// PUT /auth/password
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, usecase.NewValidationError("invalid request body"))
	}

	err = h.authUsecase.UpdatePassword(c.Request().Context(), user, usecase.UpdatePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// 認証ミドルウェアが入れたユーザーを取り出す
func currentUser(c echo.Context) (*model.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, usecase.NewAuthError("not authenticated")
	}
	return user, nil
}
