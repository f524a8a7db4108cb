// Package identity validates operator names and keys.
package identity

import (
	"errors"
	"regexp"

	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minKeyStrengthScore = 3

	operatorPattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minOperatorLength = 3
	maxOperatorLength = 20

	keyHashCost = 12
)

var (
	ErrOperatorTooShort = errors.New("operator name too short")
	ErrOperatorTooLong  = errors.New("operator name too long")
	ErrOperatorFormat   = errors.New("operator name may only contain letters, digits and underscores")
	ErrWeakKey          = errors.New("operator key is too weak")

	operatorRegex = regexp.MustCompile(operatorPattern)
)

// ValidateOperator checks an operator name.
func ValidateOperator(operator string) error {
	if len(operator) < minOperatorLength {
		return ErrOperatorTooShort
	}
	if len(operator) > maxOperatorLength {
		return ErrOperatorTooLong
	}
	if !operatorRegex.MatchString(operator) {
		return ErrOperatorFormat
	}
	return nil
}

// HashKey checks the strength of a plain operator key and returns its bcrypt
// hash, suitable for OPERATOR_KEY_HASH.
func HashKey(key string) (string, error) {
	if zxcvbn.PasswordStrength(key, nil).Score < minKeyStrengthScore {
		return "", ErrWeakKey
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), keyHashCost)
	return string(hash), err
}

// VerifyKey reports whether key matches hash.
func VerifyKey(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
