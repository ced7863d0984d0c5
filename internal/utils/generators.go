package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	accountNumberLength = 10
	cardNumberLength    = 16
)

// randomDigits returns n cryptographically random decimal digits. The first
// digit is never zero so the number keeps its full printed length.
func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		max := big.NewInt(10)
		if i == 0 {
			max = big.NewInt(9)
		}
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		d := v.Int64()
		if i == 0 {
			d++ // shift 0..8 to 1..9
		}
		digits[i] = byte('0' + d)
	}
	return string(digits), nil
}

// GenerateAccountNumber produces a candidate 10-digit account number.
// Uniqueness is enforced by the database; callers retry on ErrDuplicate.
func GenerateAccountNumber() (string, error) {
	return randomDigits(accountNumberLength)
}

// luhnCheckDigit computes the check digit that makes digits+d pass the Luhn
// algorithm.
func luhnCheckDigit(digits string) byte {
	sum := 0
	// Walk right to left; the rightmost payload digit is doubled because the
	// check digit will occupy the final (undoubled) position.
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		double = !double
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}

// ValidateLuhn reports whether a digit string passes the Luhn checksum.
func ValidateLuhn(number string) bool {
	if len(number) == 0 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		double = !double
		sum += d
	}
	return sum%10 == 0
}

// GenerateCardNumber produces a 16-digit Luhn-valid card number: 15 random
// payload digits plus the computed check digit.
func GenerateCardNumber() (string, error) {
	payload, err := randomDigits(cardNumberLength - 1)
	if err != nil {
		return "", err
	}
	return payload + string(luhnCheckDigit(payload)), nil
}
