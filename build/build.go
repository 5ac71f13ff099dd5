package build

// Set at link time via -ldflags.
var (
	Version = "dev"
	Date    = ""
)
