package randutils_test

import (
	"strings"
	"testing"

	"github.com/peterpangl/sipxecs/internal/randutils"
)

const alnum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func TestToken(t *testing.T) {
	t.Parallel()

	if got := randutils.Token(0); got != "" {
		t.Errorf("Token(0) = %q, want empty", got)
	}

	seen := make(map[string]bool)
	for range 100 {
		tok := randutils.Token(10)
		if len(tok) != 10 {
			t.Fatalf("len(Token(10)) = %d, want 10", len(tok))
		}
		if strings.Trim(tok, alnum) != "" {
			t.Fatalf("Token(10) = %q, want alphanumeric characters only", tok)
		}
		seen[tok] = true
	}
	if len(seen) < 99 {
		t.Errorf("Token(10) produced %d distinct values out of 100", len(seen))
	}
}
