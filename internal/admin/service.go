package admin

import (
	"context"
	"crypto/subtle"

	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"kisan-be/internal/apperror"
	"kisan-be/internal/auth"
	"kisan-be/internal/logger"
	"kisan-be/internal/metrics"
	"kisan-be/internal/validation"
)

var ErrInvalidCredentials = apperror.Unauthorized("invalid credentials")

type Service interface {
	Login(ctx context.Context, input LoginInput) (string, error)
	Overview(ctx context.Context) (*Overview, error)
}

type service struct {
	repo     Repository
	tokens   *auth.TokenManager
	creds    Credentials
	validate *validatorv10.Validate
}

func NewService(repo Repository, tokens *auth.TokenManager, creds Credentials) Service {
	return &service{repo: repo, tokens: tokens, creds: creds, validate: validation.New()}
}

// Login checks input against the configured credentials. An unset admin
// account never matches.
func (s *service) Login(ctx context.Context, input LoginInput) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	if err := validation.Struct(s.validate, input); err != nil {
		return "", err
	}

	if s.creds.Email == "" || s.creds.Password == "" {
		log.Warn("admin login attempted but no admin account is configured")
		return "", ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(input.Email), []byte(s.creds.Email))
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.creds.Password))
	if emailOK&passOK != 1 {
		metrics.Inc(metrics.LoginFailed)
		log.Info("admin credentials rejected")
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(0, auth.RoleAdmin, s.creds.Email, "admin")
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	o, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, apperror.Backend(err)
	}
	return o, nil
}
