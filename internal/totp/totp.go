package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// DefaultWindow is the conventional TOTP time step in seconds.
const DefaultWindow uint = 30

var (
	// ErrEmptyKey is returned when the secret decodes to zero bytes.
	ErrEmptyKey = errors.New("totp: secret decodes to an empty key")
	// ErrHashFailure is returned when the underlying digest is unusable.
	ErrHashFailure = errors.New("totp: hash computation failed")
)

// Sentinel strings for call sites that render results directly.
const (
	DisplayInvalid = "INVALID"
	DisplayError   = "ERROR"
)

// GenerateCode calculates the 6 digit code for the secret at the current
// time using the given window length in seconds.
func GenerateCode(secret string, window uint) (string, error) {
	return GenerateCodeAt(secret, time.Now(), window)
}

// GenerateCodeAt calculates the 6 digit code for the secret at the given
// time. The same secret and window always produce the same code for any two
// instants within one time step.
func GenerateCodeAt(secret string, at time.Time, window uint) (string, error) {
	if window == 0 {
		window = DefaultWindow
	}

	key := DecodeSecret(secret)
	if len(key) == 0 {
		return "", ErrEmptyKey
	}

	counter := uint64(epochSeconds(at)) / uint64(window)

	// Always the full 8 byte big-endian field, the high half stays zero for
	// any date this side of 2106 but the wire format requires it.
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	digest := mac.Sum(nil)

	code, err := truncate(digest)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", code), nil
}

// truncate applies RFC 4226 dynamic truncation to a 20 byte digest and
// reduces the result to 6 decimal digits.
func truncate(digest []byte) (uint32, error) {
	if len(digest) < sha1.Size {
		return 0, ErrHashFailure
	}

	offset := digest[len(digest)-1] & 0x0F
	binCode := uint32(digest[offset]&0x7F)<<24 |
		uint32(digest[offset+1])<<16 |
		uint32(digest[offset+2])<<8 |
		uint32(digest[offset+3])

	return binCode % 1000000, nil
}

// TimeRemaining returns the number of whole seconds left in the current
// time window.
func TimeRemaining(window uint) uint {
	return TimeRemainingAt(time.Now(), window)
}

// TimeRemainingAt returns the seconds left in the window containing the
// given time. The result is in the range [1, window]; exactly on a window
// boundary the full window length is returned, never zero.
func TimeRemainingAt(at time.Time, window uint) uint {
	if window == 0 {
		window = DefaultWindow
	}
	return window - uint(uint64(epochSeconds(at))%uint64(window))
}

// DisplayCode maps a generation result onto the string shown to a user. A
// successful result passes through, failures become distinguishable sentinel
// strings rather than an error path, so render-direct callers need no
// separate branches.
func DisplayCode(code string, err error) string {
	switch {
	case err == nil:
		return code
	case errors.Is(err, ErrEmptyKey):
		return DisplayInvalid
	default:
		return DisplayError
	}
}

// epochSeconds rounds to the nearest whole second rather than truncating,
// matching the reference generator's treatment of the clock.
func epochSeconds(at time.Time) int64 {
	return at.Round(time.Second).Unix()
}
