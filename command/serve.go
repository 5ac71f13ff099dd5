package command

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keyfob-dev/keyfob/internal/advisor"
	"github.com/keyfob-dev/keyfob/internal/api"
	"github.com/keyfob-dev/keyfob/internal/config"
	"github.com/keyfob-dev/keyfob/internal/stream"

	"github.com/paularlott/cli"
	"github.com/rs/zerolog/log"
)

var serveCmd = &cli.Command{
	Name:        "serve",
	Usage:       "Start the keyfob server",
	Description: `Start the keyfob server and listen for incoming API connections.`,
	MaxArgs:     cli.NoArgs,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:         "listen",
			Aliases:      []string{"l"},
			Usage:        "The address to listen on.",
			ConfigPath:   []string{"server.listen"},
			EnvVars:      []string{config.CONFIG_ENV_PREFIX + "_LISTEN"},
			DefaultValue: "127.0.0.1:8700",
		},
		&cli.StringFlag{
			Name:       "token",
			Usage:      "Bearer token required on API calls, leave empty for open access.",
			ConfigPath: []string{"server.token"},
			EnvVars:    []string{config.CONFIG_ENV_PREFIX + "_TOKEN"},
		},
		&cli.IntFlag{
			Name:         "rate-limit",
			Usage:        "Maximum code generation requests per second per client IP, 0 to disable.",
			ConfigPath:   []string{"server.rate_limit"},
			EnvVars:      []string{config.CONFIG_ENV_PREFIX + "_RATE_LIMIT"},
			DefaultValue: 10,
		},
		&cli.StringFlag{
			Name:       "cert-file",
			Usage:      "The file with the PEM encoded certificate to use for the server.",
			ConfigPath: []string{"server.tls.cert_file"},
			EnvVars:    []string{config.CONFIG_ENV_PREFIX + "_CERT_FILE"},
		},
		&cli.StringFlag{
			Name:       "key-file",
			Usage:      "The file with the PEM encoded key to use for the server.",
			ConfigPath: []string{"server.tls.key_file"},
			EnvVars:    []string{config.CONFIG_ENV_PREFIX + "_KEY_FILE"},
		},
		&cli.BoolFlag{
			Name:         "use-tls",
			Usage:        "Enable TLS on the server.",
			ConfigPath:   []string{"server.tls.use_tls"},
			EnvVars:      []string{config.CONFIG_ENV_PREFIX + "_USE_TLS"},
			DefaultValue: false,
		},
		&cli.BoolFlag{
			Name:         "advisor-enabled",
			Usage:        "Enable the advisory text endpoint.",
			ConfigPath:   []string{"server.advisor.enabled"},
			EnvVars:      []string{config.CONFIG_ENV_PREFIX + "_ADVISOR_ENABLED"},
			DefaultValue: false,
		},
		&cli.StringFlag{
			Name:       "advisor-api-key",
			Usage:      "The API key for the OpenAI compatible service.",
			ConfigPath: []string{"server.advisor.api_key"},
			EnvVars:    []string{config.CONFIG_ENV_PREFIX + "_ADVISOR_API_KEY"},
		},
		&cli.StringFlag{
			Name:       "advisor-base-url",
			Usage:      "The base URL of the OpenAI compatible service.",
			ConfigPath: []string{"server.advisor.base_url"},
			EnvVars:    []string{config.CONFIG_ENV_PREFIX + "_ADVISOR_BASE_URL"},
		},
		&cli.StringFlag{
			Name:         "advisor-model",
			Usage:        "The model to use for advisory text.",
			ConfigPath:   []string{"server.advisor.model"},
			EnvVars:      []string{config.CONFIG_ENV_PREFIX + "_ADVISOR_MODEL"},
			DefaultValue: "gpt-4o-mini",
		},
		&cli.IntFlag{
			Name:         "advisor-max-tokens",
			Usage:        "Maximum tokens per advisory response.",
			ConfigPath:   []string{"server.advisor.max_tokens"},
			EnvVars:      []string{config.CONFIG_ENV_PREFIX + "_ADVISOR_MAX_TOKENS"},
			DefaultValue: 1024,
		},
	},
	PreRun: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		return cmd.GetRootCmd().PreRun(ctx, cmd)
	},
	Run: func(ctx context.Context, cmd *cli.Command) error {
		cfg := &config.ServerConfig{
			Listen:    cmd.GetString("listen"),
			Token:     cmd.GetString("token"),
			RateLimit: cmd.GetInt("rate-limit"),
			TLS: config.TLSConfig{
				CertFile: cmd.GetString("cert-file"),
				KeyFile:  cmd.GetString("key-file"),
				UseTLS:   cmd.GetBool("use-tls"),
			},
			Advisor: config.AdvisorConfig{
				Enabled:   cmd.GetBool("advisor-enabled"),
				APIKey:    cmd.GetString("advisor-api-key"),
				BaseURL:   cmd.GetString("advisor-base-url"),
				Model:     cmd.GetString("advisor-model"),
				MaxTokens: cmd.GetInt("advisor-max-tokens"),
			},
		}
		config.SetServerConfig(cfg)

		adv, err := advisor.NewFromConfig(cfg.Advisor)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create advisor client")
		}
		api.Initialize(adv)

		stream.GetHub().Start()

		router := http.NewServeMux()
		api.Routes(router)

		// No read or write timeouts, the websocket code stream is
		// long-lived.
		server := &http.Server{
			Addr:              cfg.Listen,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			MaxHeaderBytes:    1 << 20,
		}

		go func() {
			log.Info().Msgf("server: listening on %s", cfg.Listen)

			if cfg.TLS.UseTLS {
				if err := server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile); err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("server failed")
				}
			} else {
				if err := server.ListenAndServe(); err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("server failed")
				}
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)

		// Block until we receive our signal.
		<-c

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)

		log.Info().Msg("server: shut down")
		return nil
	},
}
