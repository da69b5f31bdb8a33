package user

import (
	"context"
	"errors"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"kisan-be/internal/apperror"
	"kisan-be/internal/auth"
	"kisan-be/internal/db"
	"kisan-be/internal/logger"
	"kisan-be/internal/metrics"
	"kisan-be/internal/utils"
	"kisan-be/internal/validation"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	GetProfile(ctx context.Context, id uint) (*User, error)
	GetPrefill(ctx context.Context, id uint) (*Prefill, error)
}

type service struct {
	repo     Repository
	tokens   *auth.TokenManager
	validate *validatorv10.Validate
}

func NewService(repo Repository, tokens *auth.TokenManager) Service {
	return &service{repo: repo, tokens: tokens, validate: validation.New()}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validation.Struct(s.validate, input); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		FullName:     input.FullName,
		Mobile:       input.Mobile,
		Address:      input.Address,
		Email:        input.Email,
		PasswordHash: hashed,
	}
	if input.PinCode != "" {
		u.PinCode = utils.StrPtr(input.PinCode)
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, ErrEmailExists
		}
		return nil, apperror.Backend(err)
	}

	token, err := s.tokens.Generate(u.ID, auth.RoleUser, u.Email, u.FullName)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("register service completed", zap.Uint("user_id", u.ID))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validation.Struct(s.validate, input); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			metrics.Inc(metrics.LoginFailed)
			log.Info("email not found")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user", zap.Error(err))
		return nil, apperror.Backend(err)
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		metrics.Inc(metrics.LoginFailed)
		log.Info("password not match", zap.Uint("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, auth.RoleUser, u.Email, u.FullName)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *service) GetProfile(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		logger.FromCtx(ctx).Error("failed to load profile", zap.Uint("user_id", id), zap.Error(err))
		return nil, apperror.Backend(err)
	}
	return u, nil
}

// GetPrefill seeds the checkout shipping form. The result is a suggestion;
// orders carry whatever the purchaser finally submits.
func (s *service) GetPrefill(ctx context.Context, id uint) (*Prefill, error) {
	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Prefill{
		FullName: u.FullName,
		Address:  u.Address,
		PinCode:  utils.PtrString(u.PinCode),
		Mobile:   u.Mobile,
	}, nil
}
