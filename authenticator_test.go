package auth_test

import (
	"context"
	"testing"

	auth "github.com/calvite/go-userauth"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = auth.StaticConfig{
	SigningKey:      "test-signing-key",
	TokenExpiration: 1,
}

func notFoundErr() error {
	return errors.New("record not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithTextCode("RECORD_NOT_FOUND")
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").Return(nil, notFoundErr())
		store.On("Create", ctx, mock.AnythingOfType("*auth.User")).
			Return(func(_ context.Context, u *auth.User) (*auth.User, error) {
				return u, nil
			})

		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		user, err := auther.Register(ctx, auth.RegisterRequest{
			Username: "ann",
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "hunter2x",
		})
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "ann", user.Username)
		assert.Equal(t, "ann@example.com", user.Email)
		assert.Empty(t, user.PasswordHash, "returned record must not carry the hash")

		created := store.Calls[1].Arguments.Get(1).(*auth.User)
		assert.NotEmpty(t, created.PasswordHash)
		assert.NotEqual(t, "hunter2x", created.PasswordHash)
		assert.NoError(t, auth.ComparePasswordAndHash("hunter2x", created.PasswordHash))

		store.AssertExpectations(t)
	})

	t.Run("rejects invalid payload before touching the store", func(t *testing.T) {
		store := new(MockUserStore)
		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		_, err := auther.Register(ctx, auth.RegisterRequest{
			Username: "ann",
			Name:     "Ann",
			Email:    "nope",
			Password: "hunter2x",
		})
		require.ErrorIs(t, err, auth.ErrInvalidEmail)

		store.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").
			Return(&auth.User{ID: uuid.New(), Email: "ann@example.com"}, nil)

		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		_, err := auther.Register(ctx, auth.RegisterRequest{
			Username: "ann",
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "hunter2x",
		})
		require.Error(t, err)
		assert.True(t, auth.IsEmailAlreadyExistsError(err))
		assert.Contains(t, err.Error(), "A user with that email [ann@example.com] already exists. Please try another one.")

		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps a storage duplicate to the same outcome", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").Return(nil, notFoundErr())
		store.On("Create", ctx, mock.AnythingOfType("*auth.User")).
			Return(nil, auth.NewEmailAlreadyExistsError("ann@example.com"))

		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		_, err := auther.Register(ctx, auth.RegisterRequest{
			Username: "ann",
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "hunter2x",
		})
		require.Error(t, err)
		assert.True(t, auth.IsEmailAlreadyExistsError(err))
	})

	t.Run("hides storage failures behind a generic error", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").Return(nil, assert.AnError)

		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		_, err := auther.Register(ctx, auth.RegisterRequest{
			Username: "ann",
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "hunter2x",
		})
		require.ErrorIs(t, err, auth.ErrServerError)
		assert.Equal(t, "An error occurred.", auth.ErrServerError.Message)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("hunter2x")
	require.NoError(t, err)

	account := &auth.User{
		ID:           uuid.New(),
		Username:     "ann",
		Email:        "ann@example.com",
		PasswordHash: hash,
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").Return(account, nil)

		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		token, user, err := auther.Login(ctx, "ann@example.com", "hunter2x")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEmpty(t, token)
		assert.Empty(t, user.PasswordHash)

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)
		assert.Equal(t, account.ID.String(), claims.UserID())
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").Return(account, nil)
		store.On("GetByEmail", ctx, "ghost@example.com").Return(nil, notFoundErr())

		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		_, _, errWrongPwd := auther.Login(ctx, "ann@example.com", "wrong-password")
		_, _, errNoUser := auther.Login(ctx, "ghost@example.com", "whatever123")

		require.ErrorIs(t, errWrongPwd, auth.ErrInvalidCredentials)
		require.ErrorIs(t, errNoUser, auth.ErrInvalidCredentials)
		assert.Equal(t, errWrongPwd.Error(), errNoUser.Error())
	})

	t.Run("rejects invalid payload before touching the store", func(t *testing.T) {
		store := new(MockUserStore)
		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		_, _, err := auther.Login(ctx, "", "hunter2x")
		require.ErrorIs(t, err, auth.ErrMissingFields)

		_, _, err = auther.Login(ctx, "nope", "hunter2x")
		require.ErrorIs(t, err, auth.ErrInvalidEmail)

		store.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("hides storage failures behind a generic error", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").Return(nil, assert.AnError)

		auther := auth.NewAuthenticator(store, testConfig).WithLogger(noopLogger{})

		_, _, err := auther.Login(ctx, "ann@example.com", "hunter2x")
		require.ErrorIs(t, err, auth.ErrServerError)
	})

	t.Run("token issue failure is not a credential error", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").Return(account, nil)

		tokens := new(MockTokenService)
		tokens.On("Issue", account.ID.String()).Return("", assert.AnError)

		auther := auth.NewAuthenticator(store, testConfig).
			WithLogger(noopLogger{}).
			WithTokenService(tokens)

		_, _, err := auther.Login(ctx, "ann@example.com", "hunter2x")
		require.ErrorIs(t, err, auth.ErrServerError)
	})
}

func TestRegisterDeterministicIDs(t *testing.T) {
	ctx := context.Background()

	run := func() uuid.UUID {
		store := new(MockUserStore)
		store.On("GetByEmail", ctx, "ann@example.com").Return(nil, notFoundErr())
		store.On("Create", ctx, mock.AnythingOfType("*auth.User")).
			Return(func(_ context.Context, u *auth.User) (*auth.User, error) {
				return u, nil
			})

		auther := auth.NewAuthenticator(store, testConfig).
			WithLogger(noopLogger{}).
			WithDeterministicIDs()

		user, err := auther.Register(ctx, auth.RegisterRequest{
			Username: "ann",
			Name:     "Ann",
			Email:    "ann@example.com",
			Password: "hunter2x",
		})
		require.NoError(t, err)
		return user.ID
	}

	first := run()
	second := run()

	assert.NotEqual(t, uuid.Nil, first)
	assert.Equal(t, first, second)
}
