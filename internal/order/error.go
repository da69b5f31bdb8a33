package order

import "kisan-be/internal/apperror"

var (
	ErrOrderNotFound     = apperror.NotFound("order not found")
	ErrUnauthorized      = apperror.Unauthorized("sign in to place an order")
	ErrStatusConflict    = apperror.Conflict("order status changed concurrently, reload and retry")
	ErrSubmissionPending = apperror.Conflict("an order with this idempotency key is still being placed")
	ErrKeyReused         = apperror.Conflict("idempotency key was already used by another account")
)
