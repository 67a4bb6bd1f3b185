package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim names carried by access tokens issued by the identity provider.
const (
	ClaimBusinessID = "business_id"
	ClaimRole       = "role"
)

// TokenValidator checks the registered claims and signing algorithm of a
// parsed token.
type TokenValidator struct {
	Issuer    string
	Audience  string
	ClockSkew time.Duration
	Algorithm jwa.SignatureAlgorithm
}

// Validate checks algorithm, issuer, audience and the time window at now.
func (v TokenValidator) Validate(tok jwt.Token, algorithm jwa.SignatureAlgorithm, now time.Time) error {
	if tok == nil {
		return errors.New("auth: token is nil")
	}
	if algorithm == "" {
		return errors.New("auth: token missing algorithm")
	}
	if v.Algorithm != "" && algorithm != v.Algorithm {
		return fmt.Errorf("auth: unexpected token algorithm %s", algorithm)
	}
	options := []jwt.ValidateOption{
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
		jwt.WithRequiredClaim(jwt.ExpirationKey),
	}
	if v.ClockSkew > 0 {
		options = append(options, jwt.WithAcceptableSkew(v.ClockSkew))
	}
	if v.Issuer != "" {
		options = append(options, jwt.WithIssuer(v.Issuer))
	}
	if v.Audience != "" {
		options = append(options, jwt.WithAudience(v.Audience))
	}
	return jwt.Validate(tok, options...)
}

// Identity is the caller as described by a verified access token.
type Identity struct {
	UserID     string
	BusinessID int64
	Role       string
}

// Verifier checks HMAC signed access tokens. Tokens are issued elsewhere;
// this service only consumes them.
type Verifier struct {
	Secret    []byte
	Validator TokenValidator
	Now       func() time.Time
}

// NewVerifier builds an HS256 verifier.
func NewVerifier(secret, issuer, audience string) *Verifier {
	return &Verifier{
		Secret: []byte(secret),
		Validator: TokenValidator{
			Issuer:    issuer,
			Audience:  audience,
			ClockSkew: 30 * time.Second,
			Algorithm: jwa.HS256,
		},
	}
}

// Parse verifies the signature and claims of token.
func (v *Verifier) Parse(token string) (Identity, error) {
	if v == nil || len(v.Secret) == 0 {
		return Identity{}, errors.New("auth: verifier not configured")
	}
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Identity{}, errNoToken
	}
	algorithm, err := extractTokenAlgorithm(trimmed)
	if err != nil {
		return Identity{}, err
	}
	if v.Validator.Algorithm != "" && algorithm != v.Validator.Algorithm {
		return Identity{}, fmt.Errorf("auth: unexpected token algorithm %s", algorithm)
	}
	parsed, err := jwt.ParseString(trimmed, jwt.WithKey(algorithm, v.Secret), jwt.WithValidate(false))
	if err != nil {
		return Identity{}, err
	}
	if err := v.Validator.Validate(parsed, algorithm, v.now()); err != nil {
		return Identity{}, err
	}
	id := Identity{UserID: parsed.Subject()}
	if id.UserID == "" {
		return Identity{}, errors.New("auth: token missing subject")
	}
	if raw, ok := parsed.Get(ClaimBusinessID); ok {
		id.BusinessID, err = businessIDFromClaim(raw)
		if err != nil {
			return Identity{}, err
		}
	}
	if raw, ok := parsed.Get(ClaimRole); ok {
		role, _ := raw.(string)
		id.Role = strings.ToLower(strings.TrimSpace(role))
	}
	return id, nil
}

func (v *Verifier) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func businessIDFromClaim(raw any) (int64, error) {
	switch val := raw.(type) {
	case float64:
		if val <= 0 || val != float64(int64(val)) {
			return 0, fmt.Errorf("auth: invalid %s claim %v", ClaimBusinessID, val)
		}
		return int64(val), nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("auth: invalid %s claim %q", ClaimBusinessID, val)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("auth: invalid %s claim type %T", ClaimBusinessID, raw)
	}
}

func extractTokenAlgorithm(token string) (jwa.SignatureAlgorithm, error) {
	message, err := jws.ParseString(token)
	if err != nil {
		return "", err
	}
	signatures := message.Signatures()
	if len(signatures) == 0 {
		return "", errors.New("auth: token contains no signatures")
	}
	var algorithm jwa.SignatureAlgorithm
	for _, sig := range signatures {
		headers := sig.ProtectedHeaders()
		if headers == nil {
			return "", errors.New("auth: token missing protected headers")
		}
		alg := headers.Algorithm()
		if alg == "" {
			return "", errors.New("auth: token missing algorithm")
		}
		if alg == jwa.NoSignature {
			return "", errors.New("auth: token uses none algorithm")
		}
		if algorithm == "" {
			algorithm = alg
		} else if algorithm != alg {
			return "", fmt.Errorf("auth: mixed token algorithms detected")
		}
	}
	return algorithm, nil
}
