package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Alphabet for temporary passwords. 0, 1, I, O and l are left out so the
// value survives being read off a phone screen or printed badge.
const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

const tempPasswordLength = 8

func GenerateTempPassword() (string, error) {
	buf := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.New("failed to generate password")
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
