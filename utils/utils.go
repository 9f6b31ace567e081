package utils

import "math/rand"

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// Min returns the smaller of a and b.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// RandomAlphabetString generates a random lowercase string of the given
// length.
func RandomAlphabetString(length int) string {
	buf := make([]byte, length)
	for idx := range buf {
		buf[idx] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(buf)
}
