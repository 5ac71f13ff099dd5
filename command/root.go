package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keyfob-dev/keyfob/build"
	"github.com/keyfob-dev/keyfob/internal/config"

	"github.com/paularlott/cli"
	cli_toml "github.com/paularlott/cli/toml"
)

var configFile = config.CONFIG_FILE

var rootCmd = &cli.Command{
	Name:        "keyfob",
	Usage:       "Time-based one-time password generator",
	Description: `keyfob turns RFC 4648 base32 shared secrets into RFC 6238 time-based one-time password codes, from the command line or over an HTTP API. Secrets are never stored.`,
	Version:     build.Version,
	ConfigFile: cli_toml.NewConfigFile(&configFile, func() []string {
		paths := []string{"."}

		home, err := os.UserHomeDir()
		if err == nil {
			paths = append(paths, home)
			paths = append(paths, filepath.Join(home, ".config", config.CONFIG_DIR))
		}

		return paths
	}),
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Name and path to the configuration file to use.",
			DefaultText: config.CONFIG_FILE + " in the current directory, $HOME/ or $HOME/.config/" + config.CONFIG_DIR + "/" + config.CONFIG_FILE,
			EnvVars:     []string{config.CONFIG_ENV_PREFIX + "_CONFIG"},
			AssignTo:    &configFile,
		},
		&cli.StringFlag{
			Name:         "log-level",
			Usage:        "Log level one of trace, debug, info, warn, error, fatal, panic",
			ConfigPath:   []string{"log.level"},
			EnvVars:      []string{config.CONFIG_ENV_PREFIX + "_LOGLEVEL"},
			DefaultValue: "info",
			Global:       true,
		},
	},
	Commands: []*cli.Command{
		codeCmd,
		serveCmd,
	},
	PreRun: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		config.InitCommonConfig(cmd)
		return ctx, nil
	},
}

func Execute() {
	if err := rootCmd.Execute(context.Background()); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
