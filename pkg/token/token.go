package token

import (
	"crypto/rand"
	"math/big"
)

const lowerAlphaNumeric = "abcdefghijklmnopqrstuvwxyz0123456789"

// New generates a random lowercase alphanumeric token of the given
// length, suitable for upload filenames and other public identifiers
func New(length int) (string, error) {
	result := make([]byte, length)
	charsetLen := big.NewInt(int64(len(lowerAlphaNumeric)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		result[i] = lowerAlphaNumeric[num.Int64()]
	}

	return string(result), nil
}
