package branch

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
)

// Domain separation labels of the keyed hashes.
const (
	uniqueLabel = "unique"
	loopLabel   = "loop"
)

// uniqueSeed serializes the call-identifying fields of msg and the counter.
// Fields are NUL separated; none of them may contain a NUL in a valid SIP message.
func uniqueSeed(msg Message, cnt uint64) []byte {
	return []byte(strings.Join([]string{
		msg.CallID(),
		msg.CSeq(),
		msg.FromTag(),
		msg.To(),
		msg.RequestURI(),
		formatCounter(cnt),
	}, "\x00"))
}

func digest(seed []byte) []byte {
	sum := sha256.Sum256(seed)
	return sum[:digestLen]
}

func keyedSum(secret []byte, label string, parts ...[]byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(label))
	for _, p := range parts {
		mac.Write([]byte{0})
		mac.Write(p)
	}
	return mac.Sum(nil)
}

// uniqueMAC binds the counter, the digest and the loop key to the secret.
func uniqueMAC(secret []byte, cnt uint64, dgst []byte, loopKey string) []byte {
	return keyedSum(secret, uniqueLabel, []byte(formatCounter(cnt)), dgst, []byte(loopKey))[:macLen]
}

// signUnique builds the text of the unique part: digest followed by its MAC.
func signUnique(secret []byte, cnt uint64, dgst []byte, loopKey string) string {
	buf := make([]byte, 0, digestLen+macLen)
	buf = append(buf, dgst...)
	buf = append(buf, uniqueMAC(secret, cnt, dgst, loopKey)...)
	return b64.EncodeToString(buf)
}

// signLoopKey derives the loop key text from the serialized fork set.
func signLoopKey(secret, seed []byte) string {
	return b64.EncodeToString(keyedSum(secret, loopLabel, seed)[:loopKeyLen])
}

// verify reports whether t was signed with secret.
func verify(secret []byte, t Token) bool {
	raw, err := b64.DecodeString(t.Unique)
	if err != nil || len(raw) != digestLen+macLen {
		return false
	}
	dgst, mac := raw[:digestLen], raw[digestLen:]
	return hmac.Equal(mac, uniqueMAC(secret, t.Counter, dgst, t.LoopKey))
}
