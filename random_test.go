package senka

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	for _, size := range []int{8, 16, 32} {
		tok := RandomString(size)
		if len(tok) != size {
			t.Fatalf("token of size %d came out as %d", size, len(tok))
		}
		if strings.ContainsFunc(tok, func(r rune) bool {
			return !strings.ContainsRune(sessionAlphabet, r)
		}) {
			t.Errorf("token %q contains characters outside the session alphabet", tok)
		}
	}
}
