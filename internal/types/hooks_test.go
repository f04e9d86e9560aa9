package types_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/peterpangl/sipxecs/internal/types"
)

func TestHooks(t *testing.T) {
	t.Parallel()

	var h types.Hooks[func() string]
	if h.Len() != 0 {
		t.Fatalf("h.Len() = %d, want 0", h.Len())
	}

	call := func() []string {
		var got []string
		for fn := range h.All() {
			got = append(got, fn())
		}
		return got
	}

	rmA := h.Add(func() string { return "a" })
	h.Add(func() string { return "b" })
	rmC := h.Add(func() string { return "c" })
	if diff := cmp.Diff(call(), []string{"a", "b", "c"}); diff != "" {
		t.Errorf("callbacks diff (-got +want):\n%v", diff)
	}

	rmA()
	rmA()
	rmC()
	if diff := cmp.Diff(call(), []string{"b"}); diff != "" {
		t.Errorf("callbacks after remove diff (-got +want):\n%v", diff)
	}
	if h.Len() != 1 {
		t.Errorf("h.Len() = %d, want 1", h.Len())
	}

	h.Add(func() string { return "d" })
	if got := slices.Collect(h.All()); len(got) != 2 {
		t.Errorf("len(h.All()) = %d, want 2", len(got))
	}

	var nilHooks *types.Hooks[func()]
	if nilHooks.Len() != 0 || len(slices.Collect(nilHooks.All())) != 0 {
		t.Errorf("nil hooks are not empty")
	}
}
