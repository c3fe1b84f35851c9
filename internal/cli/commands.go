package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/pray/internal/config"
	"github.com/smokyabdulrahman/pray/internal/display"
	"github.com/smokyabdulrahman/pray/internal/method"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  prayer-times config set latitude 21.4225\n  prayer-times config set longitude 39.8262\n  prayer-times config set utc_offset 3\n  prayer-times config set method mwl\n  prayer-times config set high_latitude angle-based\n  prayer-times config set adjust_isha 2\n  prayer-times config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha\n\nEvery key can also be set with %s<KEY> in the environment or a .env file.",
			strings.Join(config.ValidKeys, ", "), config.EnvPrefix),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Gray("(not set)")
		}
		if key == "method" && val != "" {
			shown = formatMethodValue(cfg, val, clock.Now())
		}
		fmt.Fprintf(out, "  %-16s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method name to the stored key. Custom
// parameters that equal a preset also name the preset.
func formatMethodValue(cfg *config.Config, val string, at time.Time) string {
	p, err := method.ParsePreset(val)
	if err != nil {
		return val
	}
	if p == method.Custom {
		if st, err := cfg.Settings(at); err == nil {
			if d := method.Detect(st.Method); d != method.Custom {
				return fmt.Sprintf("%s (same parameters as %s)", val, d)
			}
		}
	}
	return fmt.Sprintf("%s (%s)", val, p)
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of supported calculation methods with their parameters.",
		Args:  cobra.NoArgs,
		RunE:  runMethods,
	}
}

func runMethods(cmd *cobra.Command, args []string) error {
	now := clock.Now()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Supported calculation methods:")
	fmt.Fprintln(out)

	tbl := display.NewTable([]string{"Key", "ID", "Fajr", "Maghrib", "Isha", "Midnight", "Name"})
	for _, p := range method.Presets() {
		m, err := method.FromPreset(now, p)
		if err != nil {
			return err
		}
		tbl.AddRow([]string{
			p.Key(),
			strconv.Itoa(p.ID()),
			m.Fajr().String(),
			m.Maghrib().String(),
			m.Isha().String(),
			m.Midnight().String(),
			p.String(),
		})
	}
	fmt.Fprint(out, tbl.Render())

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Use --method <key or ID> to select a calculation method, or")
	fmt.Fprintln(out, "'config set method custom' with fajr_angle, maghrib, isha and midnight.")
	fmt.Fprintln(out, "Umm Al-Qura uses 120 min for Isha during Ramadan.")
	return nil
}
