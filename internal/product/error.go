package product

import "kisan-be/internal/apperror"

var (
	ErrProductNotFound = apperror.NotFound("product not found")
	ErrNotOwner        = apperror.Forbidden("product belongs to another vendor")
)
