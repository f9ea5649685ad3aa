package main

import (
	"github.com/spf13/cobra"

	"formbox/internal/config"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	debug   bool
	logPath string
	theme   string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "formbox",
		Short:         "Searchable selection fields in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Write a debug log (or set FB_DEBUG_ENABLED=true)")
	cmd.PersistentFlags().StringVar(&g.logPath, "log-path", "", "Debug log location (default ~/.formbox/debug.log)")
	cmd.PersistentFlags().StringVar(&g.theme, "theme", "", "Color theme name")

	addRun(cmd, g)
	addDescribe(cmd, g)
	addSeed(cmd)
	addVersion(cmd)
	return cmd
}

// initConfig loads configuration and layers the flags the user actually set
// on top of it.
func initConfig(cmd *cobra.Command, g *globalOptions, extra map[string]any) error {
	if err := config.Initialize(); err != nil {
		return err
	}
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("debug") {
		overrides[config.KeyDebugEnabled] = g.debug
	}
	if flags.Changed("log-path") {
		overrides[config.KeyDebugLogPath] = g.logPath
	}
	if flags.Changed("theme") {
		overrides[config.KeyTheme] = g.theme
	}
	for k, v := range extra {
		overrides[k] = v
	}
	return config.ApplyOverrides(overrides)
}
