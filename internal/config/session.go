package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims bind a token to one game session.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type SessionTokens struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

// loadSecret returns generated=true when no secret was configured.
func loadSecret() (secret []byte, generated bool, err error) {
	secretStr, ok := os.LookupEnv("SESSION_SECRET")
	if ok {
		return []byte(secretStr), false, nil
	}
	secretPath, ok := os.LookupEnv("SESSION_SECRET_FILE")
	if ok {
		data, err := os.ReadFile(secretPath)
		if err != nil {
			return nil, false, fmt.Errorf("unable to read session secret file: %w", err)
		}
		return []byte(strings.TrimSpace(string(data))), false, nil
	}
	secret = make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, false, fmt.Errorf("unable to generate session secret: %w", err)
	}
	return secret, true, nil
}

// NewSessionTokens loads the signing secret from SESSION_SECRET or
// SESSION_SECRET_FILE. Without either a random secret is used, so tokens
// do not survive a restart.
func NewSessionTokens() (tokens *SessionTokens, generated bool, err error) {
	secret, generated, err := loadSecret()
	if err != nil {
		return nil, false, err
	}
	if len(secret) == 0 {
		return nil, false, fmt.Errorf("session secret is empty")
	}
	return NewSessionTokensWithSecret(secret, time.Hour*24), generated, nil
}

func NewSessionTokensWithSecret(secret []byte, lifetime time.Duration) *SessionTokens {
	return &SessionTokens{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
	}
}

func (s *SessionTokens) Sign(sessionID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(s.signingMethod, claims).SignedString(s.secret)
}

func (s *SessionTokens) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
