// Package randutils generates random protocol tokens.
package randutils

import (
	"crypto/rand"
	"math/big"
)

const tokenChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Token returns size random alphanumeric characters, e.g. for From tags.
// Every returned character is a valid RFC 3261 token character.
func Token(size int) string {
	if size <= 0 {
		return ""
	}
	buf := make([]byte, size)
	n := big.NewInt(int64(len(tokenChars)))
	for i := range buf {
		k, err := rand.Int(rand.Reader, n)
		if err != nil {
			panic(err)
		}
		buf[i] = tokenChars[k.Int64()]
	}
	return string(buf)
}
