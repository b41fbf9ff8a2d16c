package utils

import (
	"crypto/rand"
	"math/big"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordIssues checks a plain password against the account rules and
// returns one message per violated rule. An empty slice means the
// password is acceptable.
func PasswordIssues(plain string) []string {
	var issues []string
	if len(plain) < 8 {
		issues = append(issues, "senha deve ter no mínimo 8 caracteres")
	}
	var lower, upper, digit, symbol bool
	for _, r := range plain {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !lower {
		issues = append(issues, "senha precisa de letra minúscula")
	}
	if !upper {
		issues = append(issues, "senha precisa de letra maiúscula")
	}
	if !digit {
		issues = append(issues, "senha precisa de número")
	}
	if !symbol {
		issues = append(issues, "senha precisa de símbolo")
	}
	return issues
}

const activationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewActivationCode returns an 8-character uppercase alphanumeric code
// generated from crypto/rand. Codes are single-use: the repository
// clears the stored code when the account is activated.
func NewActivationCode() (string, error) {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(activationAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = activationAlphabet[n.Int64()]
	}
	return string(buf), nil
}
