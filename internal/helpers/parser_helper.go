package helpers

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// codeAlphabet leaves out 0/O/1/I/L so codes survive being read aloud at a
// tasting table.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const AccessCodeLength = 6

// GenerateAccessCode returns a random uppercase event code.
func GenerateAccessCode() (string, error) {
	code := make([]byte, AccessCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
