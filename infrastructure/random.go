package infrastructure

import (
	"crypto/rand"
	"math/big"
)

const otpCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOtpCode returns a 6-character one-time passcode.
func GenerateOtpCode() string {
	return generateRandomString(6)
}

func generateRandomString(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(otpCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process has bigger problems
			panic(err)
		}
		b[i] = otpCharset[n.Int64()]
	}
	return string(b)
}
