package service

import (
	"errors"
	"fmt"

	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/listview"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalid            = errors.New("invalid input")
	ErrSlugTaken          = errors.New("slug already exists")
	ErrInvalidParent      = errors.New("parent category not found")
	ErrCycleDetected      = listview.ErrCycleDetected
	ErrNotInTrash         = errors.New("category is not in trash")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTransitionNotAllowed = errors.New("order status transition not allowed")

	ErrPaymentTerminal   = errors.New("refunded payment cannot be changed")
	ErrUseRefundAction   = errors.New("use the refund action to refund a payment")
	ErrRefundNotAllowed  = errors.New("only completed payments can be refunded")
	ErrRefundReason      = errors.New("refund reason is required")
	ErrRefundAmount      = errors.New("refund amount must be greater than 0 and not exceed the payment amount")
	ErrCouponUnavailable = errors.New("coupon is inactive, expired or used up")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// notFound repo.ErrNotFound -> ErrNotFound（带实体名）
func notFound(err error, what string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}
