package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	err := NotFound("client %d not found", 12)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "client 12 not found", err.Error())

	wrapped := fmt.Errorf("resolve: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestPaymentKeepsCause(t *testing.T) {
	cause := errors.New("card_declined")
	err := Payment(cause, "charge for checkout %d failed", 3)

	assert.True(t, errors.Is(err, ErrPayment))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "charge for checkout 3 failed: card_declined", err.Error())
}

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindBadRequest, fiber.StatusBadRequest},
		{KindNotFound, fiber.StatusNotFound},
		{KindConflict, fiber.StatusConflict},
		{KindPayment, fiber.StatusPaymentRequired},
		{KindUnknown, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}

	var appErr *Error
	assert.True(t, errors.As(Conflict(errors.New("dup"), "email taken"), &appErr))
	assert.Equal(t, fiber.StatusConflict, appErr.ToFiber().Code)
}

func TestNonFatal(t *testing.T) {
	assert.Nil(t, NonFatal("publish", nil))

	cause := errors.New("queue down")
	err := NonFatal("publish new-client", cause)
	assert.True(t, IsNonFatal(err))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, IsNonFatal(cause))
	assert.Equal(t, KindUnknown, KindOf(err))
}
