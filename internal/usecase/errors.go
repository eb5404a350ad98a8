package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPErrorはhandlerがそのままレスポンスにできる形のエラー。
// Codeはクライアント向けのエラー種別（VALIDATION_ERROR / CONFLICT など）。
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 400 入力不正
func NewValidationError(message string) error {
	return &HTTPError{Status: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: message}
}

// 409 一意制約違反
func NewConflictError(message string) error {
	return &HTTPError{Status: http.StatusConflict, Code: "CONFLICT", Message: message}
}

// 401 認証失敗（token欠落/不正/期限切れ、認証情報不一致）
func NewAuthError(message string) error {
	return &HTTPError{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// 403 権限不足
func NewForbiddenError(message string) error {
	return &HTTPError{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: message}
}

// 404 対象なし（他人の所有物も存在しない扱い）
func NewNotFoundError(message string) error {
	return &HTTPError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// 409 許されない状態遷移
func NewStateError(message string) error {
	return &HTTPError{Status: http.StatusConflict, Code: "STATE_ERROR", Message: message}
}

// 400 決済プロバイダ側の失敗
func NewPaymentError(message string) error {
	return &HTTPError{Status: http.StatusBadRequest, Code: "PAYMENT_ERROR", Message: message}
}

// 500
func NewInternalError() error {
	return &HTTPError{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal error"}
}
