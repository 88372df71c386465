package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")
)

type AdmissionKind string

const (
	AdmissionNotFound          AdmissionKind = "not_found"
	AdmissionOutOfStock        AdmissionKind = "out_of_stock"
	AdmissionInvalidInput      AdmissionKind = "invalid_input"
	AdmissionInvalidCoupon     AdmissionKind = "invalid_coupon"
	AdmissionInvalidTransition AdmissionKind = "invalid_transition"
)

// AdmissionError - закрытое множество ошибок приема и сопровождения заказа.
// Слой сервиса возвращает только эти типизированные ошибки, не пропуская
// наверх сырые ошибки хранилища.
type AdmissionError struct {
	Kind   AdmissionKind
	Reason string
	// Fields перечисляет имена невалидных полей для AdmissionInvalidInput.
	Fields []string
}

func (e *AdmissionError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Reason, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func NewNotFoundError(what string) error {
	return &AdmissionError{Kind: AdmissionNotFound, Reason: what + " not found"}
}

func NewOutOfStockError() error {
	return &AdmissionError{Kind: AdmissionOutOfStock, Reason: "game is out of stock"}
}

func NewInvalidInputError(fields ...string) error {
	return &AdmissionError{
		Kind:   AdmissionInvalidInput,
		Reason: "invalid input",
		Fields: fields,
	}
}

func NewInvalidCouponError(reason string) error {
	return &AdmissionError{Kind: AdmissionInvalidCoupon, Reason: reason}
}

func NewInvalidTransitionError(from, to OrderStatusType) error {
	return &AdmissionError{
		Kind:   AdmissionInvalidTransition,
		Reason: fmt.Sprintf("transition %s -> %s is not allowed", from, to),
	}
}

// AsAdmissionError разворачивает цепочку ошибок до *AdmissionError.
func AsAdmissionError(err error) (*AdmissionError, bool) {
	var admErr *AdmissionError
	if errors.As(err, &admErr) {
		return admErr, true
	}
	return nil, false
}
