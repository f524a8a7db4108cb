package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-nav/identity"
	"github.com/beka-birhanu/vinom-nav/service/i"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 12 * time.Hour

var ErrInvalidCredentials = errors.New("invalid operator or key")

// OperatorAuth issues tokens to operators holding the shared operator key.
type OperatorAuth struct {
	keyHash   string
	tokenizer i.Tokenizer
	ttl       time.Duration
}

// NewOperatorAuth creates an OperatorAuth. keyHash is a bcrypt hash of the
// operator key. A non-positive ttl falls back to twelve hours.
func NewOperatorAuth(keyHash string, tokenizer i.Tokenizer, ttl time.Duration) (*OperatorAuth, error) {
	if _, err := bcrypt.Cost([]byte(keyHash)); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &OperatorAuth{
		keyHash:   keyHash,
		tokenizer: tokenizer,
		ttl:       ttl,
	}, nil
}

// SignIn checks the operator name and key and returns a token naming the
// operator.
func (a *OperatorAuth) SignIn(operator, key string) (string, error) {
	if err := identity.ValidateOperator(operator); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if !identity.VerifyKey(a.keyHash, key) {
		return "", ErrInvalidCredentials
	}

	return a.tokenizer.Generate(map[string]interface{}{
		"operator": operator,
	}, a.ttl)
}
