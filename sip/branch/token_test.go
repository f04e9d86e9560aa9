package branch_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/peterpangl/sipxecs/sip/branch"
)

var (
	testUnique  = strings.Repeat("A", 42) + "E"
	testLoopKey = strings.Repeat("_", 21) + "w"
)

func TestToken_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tok  branch.Token
		want string
	}{
		{"padded counter", branch.Token{Counter: 0x1a, Unique: testUnique}, "z9hG4bK-XX-001a~" + testUnique},
		{"long counter", branch.Token{Counter: 0x123456, Unique: testUnique}, "z9hG4bK-XX-123456~" + testUnique},
		{"loop key", branch.Token{Counter: 1, Unique: testUnique, LoopKey: testLoopKey}, "z9hG4bK-XX-0001~" + testUnique + "`" + testLoopKey},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.tok.String(); got != c.want {
				t.Errorf("tok.String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestParseToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		in     string
		want   branch.Token
		wantOK bool
	}{
		{"empty", "", branch.Token{}, false},
		{"rfc3261 only", "z9hG4bK776asdhds", branch.Token{}, false},
		{"no unique separator", "z9hG4bK-XX-0001" + testUnique, branch.Token{}, false},
		{"short counter", "z9hG4bK-XX-001~" + testUnique, branch.Token{}, false},
		{"long counter", "z9hG4bK-XX-" + strings.Repeat("f", 17) + "~" + testUnique, branch.Token{}, false},
		{"upper-case counter", "z9hG4bK-XX-00AB~" + testUnique, branch.Token{}, false},
		{"non-canonical counter", "z9hG4bK-XX-00001~" + testUnique, branch.Token{}, false},
		{"short unique", "z9hG4bK-XX-0001~" + testUnique[1:], branch.Token{}, false},
		{"bad unique char", "z9hG4bK-XX-0001~" + strings.Repeat("+", 43), branch.Token{}, false},
		{"bad unique padding bits", "z9hG4bK-XX-0001~" + strings.Repeat("A", 42) + "B", branch.Token{}, false},
		{"empty loop key", "z9hG4bK-XX-0001~" + testUnique + "`", branch.Token{}, false},
		{"short loop key", "z9hG4bK-XX-0001~" + testUnique + "`" + testLoopKey[1:], branch.Token{}, false},
		{"valid", "z9hG4bK-XX-0001~" + testUnique, branch.Token{Counter: 1, Unique: testUnique}, true},
		{"valid max counter", "z9hG4bK-XX-ffffffffffffffff~" + testUnique, branch.Token{Counter: ^uint64(0), Unique: testUnique}, true},
		{
			"valid loop key",
			"z9hG4bK-XX-abcd~" + testUnique + "`" + testLoopKey,
			branch.Token{Counter: 0xabcd, Unique: testUnique, LoopKey: testLoopKey},
			true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, ok := branch.ParseToken(c.in)
			if ok != c.wantOK {
				t.Fatalf("branch.ParseToken(%q) ok = %v, want %v", c.in, ok, c.wantOK)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("branch.ParseToken(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if ok && got.String() != c.in {
				t.Errorf("branch.ParseToken(%q).String() = %q, want the input", c.in, got.String())
			}
		})
	}
}

func TestIsRFC3261(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"z9hG4bK", true},
		{"z9hG4bK776asdhds", true},
		{"z9hG4bK-XX-0001~" + testUnique, true},
		{"Z9HG4BK776asdhds", false},
		{"a7c6a8dlze.1", false},
	}

	for _, c := range cases {
		if got := branch.IsRFC3261(c.in); got != c.want {
			t.Errorf("branch.IsRFC3261(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsSipX(t *testing.T) {
	t.Parallel()

	if branch.IsSipX("z9hG4bK776asdhds") {
		t.Errorf("branch.IsSipX(foreign) = true, want false")
	}
	if !branch.IsSipX("z9hG4bK-XX-0001~" + testUnique) {
		t.Errorf("branch.IsSipX(sipx) = false, want true")
	}
}
