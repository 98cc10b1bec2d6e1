package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService issues and validates signed access tokens.
type TokenService interface {
	Issue(subjectID string) (string, error)
	Validate(raw string) (*TokenClaims, error)
}

// TokenServiceImpl signs tokens with HMAC-SHA256 using a shared secret.
type TokenServiceImpl struct {
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
}

// NewTokenService creates a token service from the given configuration.
// Token lifetime is expressed in hours.
func NewTokenService(cfg Config) *TokenServiceImpl {
	return &TokenServiceImpl{
		signingKey:      []byte(cfg.GetSigningKey()),
		tokenExpiration: cfg.GetTokenExpiration(),
		issuer:          cfg.GetIssuer(),
		audience:        cfg.GetAudience(),
		logger:          defLogger{},
	}
}

// WithLogger replaces the default logger.
func (s *TokenServiceImpl) WithLogger(logger Logger) *TokenServiceImpl {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Issue creates a signed token for the given subject.
func (s *TokenServiceImpl) Issue(subjectID string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    s.issuer,
			Audience:  s.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenExpiration) * time.Hour)),
		},
		UID: subjectID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		s.logger.Error("token signing failed: %v", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign token").
			WithCode(errors.CodeInternal)
	}

	return signed, nil
}

// Validate parses and verifies a raw token string. Expired tokens map to
// ErrTokenExpired, every other failure to ErrTokenMalformed so callers never
// leak parser internals to clients.
func (s *TokenServiceImpl) Validate(raw string) (*TokenClaims, error) {
	opts := []jwt.ParserOption{}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method", errors.CategoryAuth).
				WithMetadata(map[string]any{"alg": t.Header["alg"]})
		}
		return s.signingKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	// jwt.WithAudience checks a single value, so membership against the
	// configured set is verified here instead.
	if len(s.audience) > 0 && !matchesAudience(claims.Audience, s.audience) {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func matchesAudience(got, want jwt.ClaimStrings) bool {
	for _, w := range want {
		for _, g := range got {
			if g == w {
				return true
			}
		}
	}
	return false
}
