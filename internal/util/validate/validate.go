package validate

// Window length bounds accepted over the API. Anything under a second is
// meaningless and anything over an hour is outside what authenticators use.
const (
	MinWindowSeconds = 1
	MaxWindowSeconds = 3600
)

func Window(seconds int) bool {
	return seconds >= MinWindowSeconds && seconds <= MaxWindowSeconds
}

func Label(label string) bool {
	return len(label) > 0 && len(label) <= 255
}

func OneOf(value string, values []string) bool {
	for _, v := range values {
		if value == v {
			return true
		}
	}
	return false
}
