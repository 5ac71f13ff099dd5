package command

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/keyfob-dev/keyfob/internal/config"
	"github.com/keyfob-dev/keyfob/internal/totp"
	"github.com/keyfob-dev/keyfob/internal/util/validate"

	"github.com/paularlott/cli"
	"golang.org/x/term"
)

var codeCmd = &cli.Command{
	Name:        "code",
	Usage:       "Generate the current code for a secret",
	Description: `Generate the current one-time password for a base32 shared secret and show how long it remains valid. If no secret is given on the command line it is prompted for without echo.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:  "secret",
			Usage: "The base32 shared secret to generate a code for",
		},
	},
	MaxArgs: cli.NoArgs,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:         "window",
			Aliases:      []string{"w"},
			Usage:        "The time window length in seconds.",
			ConfigPath:   []string{"code.window"},
			EnvVars:      []string{config.CONFIG_ENV_PREFIX + "_WINDOW"},
			DefaultValue: int(totp.DefaultWindow),
		},
		&cli.BoolFlag{
			Name:         "watch",
			Usage:        "Keep running and print a fresh code at the start of every window.",
			DefaultValue: false,
		},
		&cli.BoolFlag{
			Name:         "quiet",
			Aliases:      []string{"q"},
			Usage:        "Print the code only, for scripting.",
			DefaultValue: false,
		},
	},
	PreRun: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		return cmd.GetRootCmd().PreRun(ctx, cmd)
	},
	Run: func(ctx context.Context, cmd *cli.Command) error {
		secret := cmd.GetStringArg("secret")
		if secret == "" {
			fmt.Printf("Enter the secret: ")
			entered, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("Failed to read secret: %w", err)
			}
			fmt.Println()
			secret = string(entered)
		}

		if !totp.ValidSecret(secret) {
			return fmt.Errorf("the secret is not valid base32 text")
		}

		window := cmd.GetInt("window")
		if !validate.Window(window) {
			return fmt.Errorf("window must be between %d and %d seconds", validate.MinWindowSeconds, validate.MaxWindowSeconds)
		}

		quiet := cmd.GetBool("quiet")
		printCode(secret, time.Now(), uint(window), quiet)

		if !cmd.GetBool("watch") || quiet {
			return nil
		}

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				// A full window remaining marks the rollover edge.
				if totp.TimeRemainingAt(now, uint(window)) == uint(window) {
					printCode(secret, now, uint(window), false)
				}
			}
		}
	},
}

func printCode(secret string, at time.Time, window uint, quiet bool) {
	code, err := totp.GenerateCodeAt(secret, at, window)
	display := totp.DisplayCode(code, err)

	if quiet {
		fmt.Println(display)
		return
	}

	fmt.Printf("%s  (valid for %ds)\n", display, totp.TimeRemainingAt(at, window))
}
