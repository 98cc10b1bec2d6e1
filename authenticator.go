package auth

import (
	"context"
	"sync"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// fallbackHash is the comparison target for logins against unknown emails.
// Computed once on first use so package init stays cheap.
var fallbackHash = sync.OnceValue(RandomPasswordHash)

// Auther handles registration and login against a UserStore.
type Auther struct {
	store            UserStore
	tokens           TokenService
	logger           Logger
	deterministicIDs bool
}

// NewAuthenticator creates an Auther wired to the given store. The token
// service is built from cfg; use TokenService to share it with the
// authorization side.
func NewAuthenticator(store UserStore, cfg Config) *Auther {
	return &Auther{
		store:  store,
		tokens: NewTokenService(cfg),
		logger: defLogger{},
	}
}

// WithLogger replaces the default logger.
func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithTokenService replaces the token service built from the config.
func (a *Auther) WithTokenService(tokens TokenService) *Auther {
	if tokens != nil {
		a.tokens = tokens
	}
	return a
}

// WithDeterministicIDs makes Register derive user IDs from the email address
// instead of generating random ones. Re-registering the same email on a fresh
// database yields the same ID, which keeps externally stored references valid.
func (a *Auther) WithDeterministicIDs() *Auther {
	a.deterministicIDs = true
	return a
}

// TokenService exposes the token service for middleware wiring.
func (a *Auther) TokenService() TokenService {
	return a.tokens
}

// Register validates the payload, hashes the password, and creates the user.
// The returned record never carries the password hash.
func (a *Auther) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := a.store.GetByEmail(ctx, req.Email); err == nil {
		return nil, NewEmailAlreadyExistsError(req.Email)
	} else if !errors.IsNotFound(err) {
		a.logger.Error("register: email lookup failed: %v", err)
		return nil, ErrServerError
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		a.logger.Error("register: password hashing failed: %v", err)
		return nil, ErrServerError
	}

	user := &User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if a.deterministicIDs {
		if id, err := hashid.NewUUID(req.Email); err == nil {
			user.ID = id
		}
	}

	created, err := a.store.Create(ctx, user)
	if err != nil {
		// The pre-check above races with concurrent registrations, so the
		// unique constraint is the authoritative duplicate signal.
		if IsEmailAlreadyExistsError(err) {
			return nil, NewEmailAlreadyExistsError(req.Email)
		}
		a.logger.Error("register: create failed: %v", err)
		return nil, ErrServerError
	}

	return created.Sanitize(), nil
}

// Login verifies the credentials and issues an access token. Unknown emails
// and wrong passwords produce the identical error, and the unknown-email path
// still runs a hash comparison so the two are indistinguishable by timing.
func (a *Auther) Login(ctx context.Context, email, password string) (string, *User, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return "", nil, err
	}

	user, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			_ = ComparePasswordAndHash(password, fallbackHash())
			return "", nil, ErrInvalidCredentials
		}
		a.logger.Error("login: email lookup failed: %v", err)
		return "", nil, ErrServerError
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(user.ID.String())
	if err != nil {
		a.logger.Error("login: token issue failed: %v", err)
		return "", nil, ErrServerError
	}

	return token, user.Sanitize(), nil
}

// ParseUserID parses the subject carried by a token into a user ID.
func ParseUserID(subject string) (uuid.UUID, error) {
	return uuid.Parse(subject)
}
