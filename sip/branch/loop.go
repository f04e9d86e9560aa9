package branch

// detectLoop walks branches from the topmost hop down and returns the 1-based index
// of the first hop that closes a loop, or 0.
//
// A hop matches when its branch is recognized and carries loopKey. Without a loop key
// the only possible match is raw, the verbatim value of an opaque server branch,
// found again below the top hop.
func detectLoop(branches []string, loopKey, raw string) int {
	for i, b := range branches {
		hop := i + 1
		if loopKey != "" {
			if tok, ok := ParseToken(b); ok && tok.LoopKey == loopKey {
				return hop
			}
			continue
		}
		if raw != "" && hop >= 2 && b == raw {
			return hop
		}
	}
	return 0
}
