// Package auth verifies bearer credentials and maps them to the numeric user
// id that owns posts.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/pkg/config"
	"github.com/golang-jwt/jwt/v4"
)

// TokenVerifier maps a bearer credential to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (int64, error)
}

// JWTVerifier validates HMAC signed JWTs with a single server held secret.
type JWTVerifier struct {
	secret    []byte
	algorithm string
	parser    *jwt.Parser
}

var _ TokenVerifier = (*JWTVerifier)(nil)

// NewJWTVerifier fails when the secret is empty or the algorithm is not an
// HMAC method. Callers are expected to treat that as a startup error.
func NewJWTVerifier(secret, algorithm string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: signing secret is required")
	}
	if _, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", algorithm)
	}
	return &JWTVerifier{
		secret:    []byte(secret),
		algorithm: algorithm,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{algorithm}),
			jwt.WithJSONNumber(),
		),
	}, nil
}

// NewJWTVerifierFromConfig builds a verifier from the loaded auth settings.
func NewJWTVerifierFromConfig(cfg *config.AuthConfig) (*JWTVerifier, error) {
	if cfg == nil {
		return nil, fmt.Errorf("auth: config is required")
	}
	return NewJWTVerifier(cfg.SecretKey.Value(), cfg.Algorithm)
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (int64, error) {
	start := time.Now()
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		reason := failureReason(err)
		RecordAuthAttempt(ctx, AuthOutcomeFailure, reason, time.Since(start))
		return 0, fmt.Errorf("%w: %s", ErrUnauthorized, reason)
	}
	userID, err := subjectID(claims)
	if err != nil {
		reason := ReasonMissingSubject
		if errors.Is(err, ErrInvalidSubject) {
			reason = ReasonInvalidSubject
		}
		RecordAuthAttempt(ctx, AuthOutcomeFailure, reason, time.Since(start))
		return 0, err
	}
	RecordAuthAttempt(ctx, AuthOutcomeSuccess, ReasonNone, time.Since(start))
	return userID, nil
}

// subjectID accepts the subject as a JSON string or an integral JSON number.
func subjectID(claims jwt.MapClaims) (int64, error) {
	raw, ok := claims["sub"]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: missing subject", ErrUnauthorized)
	}
	var text string
	switch sub := raw.(type) {
	case string:
		text = strings.TrimSpace(sub)
		if text == "" {
			return 0, fmt.Errorf("%w: missing subject", ErrUnauthorized)
		}
	case json.Number:
		text = sub.String()
	default:
		return 0, ErrInvalidSubject
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, ErrInvalidSubject
	}
	return id, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	default:
		return ReasonInvalidCredentials
	}
}
