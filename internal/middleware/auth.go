package middleware

import (
	"errors"
	"net/http"

	"kisan-be/internal/auth"
	"kisan-be/internal/logger"
	"kisan-be/internal/utils"

	"go.uber.org/zap"
)

// Auth attaches the caller identity from a valid access token. Requests
// without a token, or with an invalid one, continue anonymously and are
// rejected later by routes that need a role.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.Authenticate(r)
			if errors.Is(err, auth.ErrNoToken) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.SubjectID, claims.Email, string(claims.Role), claims.Name)
			ctx = logger.WithFields(ctx,
				zap.String("role", string(claims.Role)),
				zap.Uint("subject_id", claims.SubjectID),
			)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
