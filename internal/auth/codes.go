package auth

import "crypto/rand"

// Invite codes avoid 0/O and 1/I so they survive being read aloud in a classroom.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 5

// NewCode generates a short invite code with the given role prefix,
// e.g. NewCode("TCHR") -> "TCHR-7XK2M".
func NewCode(prefix string) string {
	b := make([]byte, codeLength)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return prefix + "-" + string(b)
}
