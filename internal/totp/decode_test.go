package totp

import (
	"bytes"
	"testing"
)

func TestDecodeSecret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{
			name:  "valid base32",
			input: "JBSWY3DP",
			want:  []byte("Hello"),
		},
		{
			name:  "lowercase",
			input: "jbswy3dp",
			want:  []byte("Hello"),
		},
		{
			name:  "trailing padding",
			input: "JBSWY3DPEB3W64TMMQ======",
			want:  []byte("Hello world"),
		},
		{
			name:  "incidental whitespace",
			input: "  JBSW Y3DP\t",
			want:  []byte("Hello"),
		},
		{
			name:  "invalid characters skipped",
			input: "JBSW-Y3DP",
			want:  []byte("Hello"),
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "padding only",
			input: "====",
			want:  nil,
		},
		{
			name:  "no valid characters",
			input: "0189!?-",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeSecret(tt.input)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("DecodeSecret(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeSecretPollutedInput(t *testing.T) {
	// The output buffer is pre-sized from the raw length, which heavily
	// over-estimates when most characters are invalid. The result must still
	// be exactly the bytes of the valid characters, neither truncated nor
	// padded to the hint.
	polluted := "#J!B@S$W%Y^3&D*P#########################"
	got := DecodeSecret(polluted)
	if !bytes.Equal(got, []byte("Hello")) {
		t.Errorf("DecodeSecret(%q) = %v, want %v", polluted, got, []byte("Hello"))
	}
}

func TestDecodeSecretMatchesRFCKey(t *testing.T) {
	got := DecodeSecret("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ")
	if !bytes.Equal(got, []byte("12345678901234567890")) {
		t.Errorf("RFC key decoded to %v", got)
	}
}
