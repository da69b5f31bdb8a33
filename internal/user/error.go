package user

import "kisan-be/internal/apperror"

var (
	ErrEmailExists        = apperror.Conflict("email already registered")
	ErrInvalidCredentials = apperror.Unauthorized("invalid credentials")
	ErrUserNotFound       = apperror.NotFound("profile not found, sign in again")
)
