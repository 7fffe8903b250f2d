// FILE: cmd/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lixenwraith/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ServerConfigSection holds the server parameters of the example config.
type ServerConfigSection struct {
	Host    string        `toml:"host" validate:"required"`
	Port    int           `toml:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `toml:"timeout"`
}

// ExampleConfig is loaded once at startup from ~/.example/config.toml.
type ExampleConfig struct {
	Name   string              `toml:"name"`
	Server ServerConfigSection `toml:"server"`
}

// BasicSettingsSection holds values the user changes while the app runs.
type BasicSettingsSection struct {
	Totals int    `toml:"totals"`
	Theme  string `toml:"theme" validate:"oneof=light dark"`
}

// ExampleSettings is stored in ~/.example/settings.json.
type ExampleSettings struct {
	Name   string               `toml:"name"`
	Basics BasicSettingsSection `toml:"basics"`
}

func main() {
	os.Exit(run())
}

func run() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	reg := settings.NewBuilder().WithLogger(logger).MustBuild()

	cfg, err := settings.NewConfig(reg, ExampleConfig{
		Name:   "nice example",
		Server: ServerConfigSection{Host: "localhost", Port: 8080, Timeout: 30 * time.Second},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	st, err := settings.NewSettings(reg, ExampleSettings{
		Name:   "nice name",
		Basics: BasicSettingsSection{Totals: 2, Theme: "light"},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	root := &cobra.Command{
		Use:           "example",
		Short:         "Show and change the example config and settings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	settings.BindCommand(root, func(fs *pflag.FlagSet) []*settings.FlagBinding {
		return []*settings.FlagBinding{
			settings.BindConfigFlag(fs, cfg, true),
			settings.BindSettingsFlag(fs, st, false),
		}
	})

	root.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the config and the settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "# %s\n", cfg.Filepath())
				if err := cfg.Dump(out, settings.FormatTOML); err != nil {
					return err
				}
				fmt.Fprintf(out, "\n# %s\n", st.Filepath())
				return st.Dump(out, settings.FormatJSON)
			},
		},
		&cobra.Command{
			Use:   "set <key.path> <value>",
			Short: "Change one setting and save it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := st.UpdatePath(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s to %s\n", args[0], st.Filepath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "debug",
			Short: "Print current and default values",
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := cfg.Get(); err != nil {
					return err
				}
				if _, err := st.Get(); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), cfg.Debug(), "\n", st.Debug())
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
