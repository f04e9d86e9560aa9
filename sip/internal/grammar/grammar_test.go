package grammar_test

import (
	"testing"

	"github.com/peterpangl/sipxecs/sip/internal/grammar"
)

func TestIsToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"z9hG4bK776asdhds", true},
		{"z9hG4bK-XX-0001~abc`def", true},
		{"a.b!c%d*e_f+g'h~i", true},
		{"with space", false},
		{"semi;colon", false},
		{"com,ma", false},
		{`quo"te`, false},
		{"ang<le>", false},
	}

	for _, c := range cases {
		if got := grammar.IsToken(c.in); got != c.want {
			t.Errorf("grammar.IsToken(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, escaped string
	}{
		{"", ""},
		{"alice", "alice"},
		{"al ice", "al%20ice"},
		{"a%20b", "a%20b"},
		{"a@b", "a%40b"},
	}

	for _, c := range cases {
		if got := grammar.Escape(c.in, nil); got != c.escaped {
			t.Errorf("grammar.Escape(%q) = %q, want %q", c.in, got, c.escaped)
		}
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"alice", "alice"},
		{"al%20ice", "al ice"},
		{"%4a%4B", "JK"},
		{"bad%2", "bad%2"},
		{"bad%zz", "bad%zz"},
	}

	for _, c := range cases {
		if got := grammar.Unescape(c.in); got != c.want {
			t.Errorf("grammar.Unescape(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
