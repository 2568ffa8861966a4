package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
	"go-shop-admin/pkg/listview"
)

func TestFailMapsServiceErrors(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("category %w", service.ErrNotFound):         404,
		service.ErrSlugTaken:                                   409,
		service.ErrInvalidCredentials:                          401,
		fmt.Errorf("%w: name is required", service.ErrInvalid): 400,
		&listview.CycleError{IDs: []string{"a", "b"}}:          400,
		service.ErrRefundAmount:                                400,
		service.ErrRefundReason:                                400,
		service.ErrNotInTrash:                                  422,
		service.ErrPaymentTerminal:                             422,
		service.ErrUseRefundAction:                             422,
		service.ErrCouponUnavailable:                           422,
		service.ErrTransitionNotAllowed:                        422,
		errors.New("db is down"):                               500,
		ez.Forbidden("nope"):                                   403,
	}
	for in, code := range cases {
		assert.Equal(t, code, ez.AsAErr(fail(in)).Code, in.Error())
	}
	assert.NoError(t, fail(nil))
	assert.Equal(t, "internal error", fail(errors.New("secret dsn")).Error())
}
