// Package security implements password hashing, session token issuance and
// validation, and role authorization.
//
// Tokens are compact HS256 JWTs. The signing secret, issuer and audience are
// passed in through TokenConfig; nothing is read from the environment here.
package security

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/smartoffice/platform/internal/core/domain"
)

// DefaultTokenTTL is the session lifetime used when TokenConfig.TTL is unset.
const DefaultTokenTTL = time.Hour

// TokenConfig is shared by the issuing and validating services.
type TokenConfig struct {
	Secret           []byte
	Issuer           string
	Audience         string
	TTL              time.Duration
	Leeway           time.Duration
	ValidateIssuer   bool
	ValidateAudience bool
}

// sessionClaims is the JWT payload. unique_name and role are read by the
// dashboard when it decodes the token client-side.
type sessionClaims struct {
	Name string `json:"unique_name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Clock returns the current time.
type Clock func() time.Time

// TokenIssuer signs session tokens.
type TokenIssuer struct {
	cfg TokenConfig
	now Clock
}

// NewTokenIssuer returns an issuer. A nil clock means time.Now.
func NewTokenIssuer(cfg TokenConfig, now Clock) (*TokenIssuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token issuer: secret is required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{cfg: cfg, now: now}, nil
}

// Issue mints a token for username carrying role.
func (i *TokenIssuer) Issue(username string, role domain.Role) (string, *domain.Claims, error) {
	if strings.TrimSpace(username) == "" {
		return "", nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if !role.Valid() {
		return "", nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	now := i.now().UTC().Truncate(time.Second)
	exp := now.Add(i.cfg.TTL)

	rc := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    i.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
		ID:        uuid.NewString(),
	}
	if i.cfg.Audience != "" {
		rc.Audience = jwt.ClaimStrings{i.cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Name:             username,
		Role:             string(role),
		RegisteredClaims: rc,
	})
	signed, err := t.SignedString(i.cfg.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return signed, &domain.Claims{
		Username:  username,
		Role:      role,
		Issuer:    rc.Issuer,
		Audience:  []string(rc.Audience),
		TokenID:   rc.ID,
		IssuedAt:  now,
		ExpiresAt: exp,
	}, nil
}

// TokenValidator verifies session tokens. It holds no mutable state and is
// safe for concurrent use.
type TokenValidator struct {
	cfg    TokenConfig
	now    Clock
	parser *jwt.Parser
}

// NewTokenValidator returns a validator. A nil clock means time.Now.
func NewTokenValidator(cfg TokenConfig, now Clock) (*TokenValidator, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token validator: secret is required")
	}
	if now == nil {
		now = time.Now
	}
	// Time, issuer and audience are checked below so the order of checks and
	// the clock stay under our control.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	return &TokenValidator{cfg: cfg, now: now, parser: parser}, nil
}

// Validate checks signature, then issuer/audience, then the time window, and
// returns the embedded claims.
func (v *TokenValidator) Validate(token string) (*domain.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	var sc sessionClaims
	parsed, err := v.parser.ParseWithClaims(token, &sc, func(*jwt.Token) (any, error) {
		return v.cfg.Secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidSignature
	}

	if v.cfg.ValidateIssuer && sc.Issuer != v.cfg.Issuer {
		return nil, domain.ErrInvalidIssuerOrAudience
	}
	if v.cfg.ValidateAudience && !slices.Contains([]string(sc.Audience), v.cfg.Audience) {
		return nil, domain.ErrInvalidIssuerOrAudience
	}

	if sc.ExpiresAt == nil || sc.IssuedAt == nil {
		return nil, fmt.Errorf("%w: exp and iat are required", domain.ErrInvalidClaims)
	}
	now := v.now().UTC()
	if !now.Before(sc.ExpiresAt.Time.Add(v.cfg.Leeway)) {
		return nil, domain.ErrTokenExpired
	}
	if now.Add(v.cfg.Leeway).Before(sc.IssuedAt.Time) {
		return nil, domain.ErrTokenNotYetValid
	}
	if sc.NotBefore != nil && now.Add(v.cfg.Leeway).Before(sc.NotBefore.Time) {
		return nil, domain.ErrTokenNotYetValid
	}

	username := sc.Name
	if username == "" {
		username = sc.Subject
	}
	if username == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidClaims)
	}
	role, err := domain.ParseRole(sc.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidClaims, sc.Role)
	}

	return &domain.Claims{
		Username:  username,
		Role:      role,
		Issuer:    sc.Issuer,
		Audience:  []string(sc.Audience),
		TokenID:   sc.ID,
		IssuedAt:  sc.IssuedAt.Time,
		ExpiresAt: sc.ExpiresAt.Time,
	}, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrMalformedToken
	default:
		return fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
}
