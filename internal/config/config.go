package config

import (
	"github.com/paularlott/cli"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	CONFIG_ENV_PREFIX = "KEYFOB"
	CONFIG_FILE       = "keyfob.toml"
	CONFIG_DIR        = "keyfob"
)

type ServerConfig struct {
	Listen    string
	Token     string
	RateLimit int
	TLS       TLSConfig
	Advisor   AdvisorConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
	UseTLS   bool
}

type AdvisorConfig struct {
	Enabled   bool
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// Global configuration instance
var (
	serverConfig *ServerConfig
)

// SetServerConfig sets the global server configuration
func SetServerConfig(config *ServerConfig) {
	serverConfig = config
}

// GetServerConfig returns the global server configuration
func GetServerConfig() *ServerConfig {
	return serverConfig
}

// InitCommonConfig applies the settings shared by every command.
func InitCommonConfig(cmd *cli.Command) {
	switch cmd.GetString("log-level") {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		log.Warn().Msg("Unknown log level, using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
