package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kisan-be/internal/apperror"
	"kisan-be/internal/auth"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func validRegistration() RegisterInput {
	return RegisterInput{
		FullName:        "Asha Rao",
		Mobile:          "9876543210",
		Address:         "12 MG Road",
		PinCode:         "560001",
		Email:           "Asha@Kisan.in ",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("testsecret", time.Hour)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)

		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Email == "asha@kisan.in" &&
				u.PinCode != nil && *u.PinCode == "560001" &&
				auth.CheckPasswordHash("secret1", u.PasswordHash)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*User).ID = 5
		}).Return(nil)

		res, err := svc.Register(ctx, validRegistration())
		require.NoError(t, err)
		assert.Equal(t, uint(5), res.User.ID)

		claims, err := tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, uint(5), claims.SubjectID)
		assert.Equal(t, auth.RoleUser, claims.Role)
	})

	t.Run("Validation", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)

		in := validRegistration()
		in.Mobile = "12345"
		in.ConfirmPassword = "other"

		_, err := svc.Register(ctx, in)
		require.Error(t, err)
		fields := apperror.FieldsOf(err)
		assert.Equal(t, "must be 10 characters", fields["mobile"])
		assert.Equal(t, "must match Password", fields["confirm_password"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmailExists", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("Create", ctx, mock.Anything).Return(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		_, err := svc.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("BackendError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, tokens)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

		_, err := svc.Register(ctx, validRegistration())
		assert.Equal(t, apperror.KindBackend, apperror.KindOf(err))
		assert.EqualError(t, err, "connection refused")
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("testsecret", time.Hour)
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	stored := &User{ID: 5, FullName: "Asha Rao", Email: "asha@kisan.in", PasswordHash: hash}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "asha@kisan.in").Return(stored, nil)

		res, err := NewService(repo, tokens).Login(ctx, LoginInput{Email: "asha@kisan.in", Password: "secret1"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "asha@kisan.in").Return(stored, nil)

		_, err := NewService(repo, tokens).Login(ctx, LoginInput{Email: "asha@kisan.in", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "ghost@kisan.in").Return(nil, ErrUserNotFound)

		_, err := NewService(repo, tokens).Login(ctx, LoginInput{Email: "ghost@kisan.in", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("BackendError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", ctx, "asha@kisan.in").Return(nil, errors.New("timeout"))

		_, err := NewService(repo, tokens).Login(ctx, LoginInput{Email: "asha@kisan.in", Password: "secret1"})
		assert.Equal(t, apperror.KindBackend, apperror.KindOf(err))
	})
}

func TestService_GetPrefill(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("testsecret", time.Hour)

	t.Run("FromProfile", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", ctx, uint(5)).Return(&User{ID: 5, FullName: "Asha Rao", Address: "12 MG Road", Mobile: "9876543210"}, nil)

		p, err := NewService(repo, tokens).GetPrefill(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, &Prefill{FullName: "Asha Rao", Address: "12 MG Road", Mobile: "9876543210"}, p)
	})

	t.Run("NoProfile", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByID", ctx, uint(9)).Return(nil, ErrUserNotFound)

		_, err := NewService(repo, tokens).GetPrefill(ctx, 9)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
