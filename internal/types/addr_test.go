package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/peterpangl/sipxecs/internal/errorutil"
	"github.com/peterpangl/sipxecs/internal/types"
)

func TestParseAddr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      string
		want    types.Addr
		wantErr error
	}{
		{"host", "Example.COM", types.Host("Example.COM"), nil},
		{"host port", "example.com:5060", types.HostPort("example.com", 5060), nil},
		{"ipv4 port", "192.0.2.1:5080", types.HostPort("192.0.2.1", 5080), nil},
		{"ipv6", "2001:db8::1", types.Host("2001:db8::1"), nil},
		{"ipv6 ref port", "[2001:db8::1]:5060", types.HostPort("2001:db8::1", 5060), nil},
		{"empty", "", types.Addr{}, errorutil.ErrInvalidArgument},
		{"empty port", "example.com:", types.Addr{}, errorutil.ErrInvalidArgument},
		{"bad port", "example.com:99999", types.Addr{}, errorutil.ErrInvalidArgument},
		{"unterminated ref", "[2001:db8::1", types.Addr{}, errorutil.ErrInvalidArgument},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := types.ParseAddr(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("types.ParseAddr(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			if c.wantErr != nil {
				return
			}
			if !got.Equal(c.want) {
				t.Errorf("types.ParseAddr(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestAddr_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		addr types.Addr
		want string
	}{
		{"zero", types.Addr{}, ""},
		{"domain", types.Host("example.com"), "example.com"},
		{"domain port", types.HostPort("example.com", 5060), "example.com:5060"},
		{"ipv6", types.Host("[2001:db8::1]"), "[2001:db8::1]"},
		{"ipv6 port", types.HostPort("2001:db8::1", 5060), "[2001:db8::1]:5060"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.addr.String(); got != c.want {
				t.Errorf("addr.String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestAddr_Equal(t *testing.T) {
	t.Parallel()

	if !types.Host("EXAMPLE.com").Equal(types.Host("example.COM")) {
		t.Error("hosts differing in case are not equal")
	}
	if types.Host("example.com").Equal(types.HostPort("example.com", 5060)) {
		t.Error("host equals host:port")
	}
	if got, want := types.HostPort("EXAMPLE.com", 5060).Canonic(), "example.com:5060"; got != want {
		t.Errorf("addr.Canonic() = %q, want %q", got, want)
	}
}
