package totp

import (
	"strings"
)

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// DecodeSecret converts a human-entered base32 secret into raw key bytes.
//
// The input is uppercased, whitespace is removed and trailing padding is
// dropped before decoding. Characters outside the RFC 4648 alphabet are
// skipped rather than treated as an error, so secrets pasted with stray
// separators still decode. An empty result is a valid outcome and means no
// code can be generated from the input.
func DecodeSecret(secret string) []byte {
	normalized := strings.ToUpper(strings.Join(strings.Fields(secret), ""))
	normalized = strings.TrimRight(normalized, "=")

	// Capacity hint only, the emission loop below decides how many bytes
	// are actually produced.
	decoded := make([]byte, 0, len(normalized)*5/8)

	var accumulator uint32
	var bitCount uint

	for _, c := range []byte(normalized) {
		value := strings.IndexByte(base32Alphabet, c)
		if value < 0 {
			continue
		}

		accumulator = accumulator<<5 | uint32(value)
		bitCount += 5

		if bitCount >= 8 {
			decoded = append(decoded, byte(accumulator>>(bitCount-8)))
			bitCount -= 8
		}
	}

	return decoded
}
