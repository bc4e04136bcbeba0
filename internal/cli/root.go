// Package cli wires the advisor commands.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"advisor/internal/config"
	"advisor/internal/logging"
	"advisor/internal/messages"
	"advisor/internal/rules"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configFile string
	cfg        *config.Config
	tables     rules.Tables
	messages   *messages.Printer
	closeLog   func() error
}

// Execute runs the advisor CLI.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	a := &app{closeLog: func() error { return nil }}
	cmd := &cobra.Command{
		Use:           "advisor",
		Short:         "Terminal viewer for cluster advisor recommendations",
		Long:          "Render a single advisor recommendation with its affected clusters.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.closeLog()
		},
	}

	defaults := config.DefaultConfig()
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: advisor.yaml in $XDG_CONFIG_HOME/advisor, ~/.config/advisor or .)")
	flags.String("tables", "", "YAML file overriding severity and category tables")
	flags.String("theme", defaults.Theme, "theme: vapor|midnight|dusk")
	flags.String("language", defaults.Language, "message language (BCP 47)")
	flags.String("markdown", defaults.MarkdownStyle, "glamour style: dark|light|notty|auto")
	flags.Int("page-size", defaults.PageSize, "clusters per table page")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", defaults.Logging.Level, "log level: debug|info|warn|error")
	flags.String("log-format", defaults.Logging.Format, "log format: console|json")

	cmd.AddCommand(newViewCmd(a), newRenderCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if a.configFile != "" {
		loader.SetConfigFile(a.configFile)
	}
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	out, closeLog, err := logging.OpenFile(cfg.Logging.File)
	if err != nil {
		return err
	}
	a.closeLog = closeLog
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: out,
	})

	tables := rules.DefaultTables()
	if cfg.TablesFile != "" {
		if tables, err = rules.LoadTables(cfg.TablesFile); err != nil {
			return err
		}
	}
	a.tables = tables

	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return fmt.Errorf("language %q: %w", cfg.Language, err)
	}
	a.messages = messages.NewPrinter(tag)

	logger().Debug().
		Str("command", cmd.Name()).
		Str("theme", cfg.Theme).
		Str("tables", cfg.TablesFile).
		Msg("configuration loaded")
	return nil
}

// logger is resolved per call so it picks up the logger built in setup.
func logger() *zerolog.Logger {
	l := logging.WithComponent("cli")
	return &l
}
