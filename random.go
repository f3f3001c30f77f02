package senka

import (
	"math/rand"
	"strings"
)

const sessionAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString builds an alphanumeric token of the given length. Session
// IDs are the consumer, so the alphabet stays header- and URL-safe.
func RandomString(size int) string {
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(sessionAlphabet[rand.Intn(len(sessionAlphabet))])
	}
	return sb.String()
}
