package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/mentor/internal/config"
	"github.com/dshills/mentor/internal/output"
	"github.com/dshills/mentor/internal/providers"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mentor configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists at %s\n", path)
			return nil
		}

		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value in the config file.\n\nKeys: " + strings.Join(config.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}

		if err := validateSetting(args[0], args[1]); err != nil {
			return err
		}
		if err := config.SetField(&cfg, args[0], args[1]); err != nil {
			return err
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// validateSetting rejects values the rest of mentor would refuse at run time,
// so a bad value never reaches the config file.
func validateSetting(key, value string) error {
	switch key {
	case "provider":
		if _, ok := providers.Canonical(value); !ok {
			return fmt.Errorf("unknown provider %q (want one of %s)", value, strings.Join(providers.Names(), ", "))
		}
	case "format":
		if _, err := output.GetFormatter(value, output.Meta{}); err != nil {
			return fmt.Errorf("%w (want one of %s)", err, strings.Join(output.Formats(), ", "))
		}
	case "style":
		if value == "auto" {
			return nil
		}
		md := &output.MarkdownFormatter{Style: value}
		if _, err := md.Format(""); err != nil {
			return fmt.Errorf("unknown markdown style %q", value)
		}
	case "task":
		if value != "text-generation" {
			return fmt.Errorf("unsupported task %q (only text-generation)", value)
		}
	case "log.level":
		if _, err := zerolog.ParseLevel(strings.ToLower(value)); err != nil {
			return fmt.Errorf("invalid log level %q", value)
		}
	case "log.format":
		if value != "console" && value != "json" {
			return fmt.Errorf("invalid log format %q (want console or json)", value)
		}
	}
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
