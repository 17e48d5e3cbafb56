package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/config"
	"github.com/pulsehq/pulse/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCmd.RunE(cmd, args)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		paths := config.GetPaths()

		ui.Header("Configuration")
		ui.Kv("name", cfg.User.Name)
		ui.Kv("provider", cfg.AI.Provider)
		ui.Kv("model", cfg.AI.Model)
		ui.Kv("api key", maskKey(cfg.ResolveAPIKey()))
		ui.Kv("encrypt", strconv.FormatBool(cfg.Storage.Encrypt))
		ui.Kv("port", strconv.Itoa(cfg.Web.Port))
		fmt.Println()
		ui.Kv("config", paths.ConfigFile)
		ui.Kv("database", paths.DBFile)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets one of: name, provider, model, api-key, encrypt, port.
Turning encrypt on only affects data saved afterwards.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "name":
			cfg.User.Name = value
		case "provider":
			cfg.AI.Provider = value
		case "model":
			cfg.AI.Model = value
		case "api-key":
			cfg.AI.APIKey = value
		case "encrypt":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("encrypt must be true or false, got %q", value)
			}
			cfg.Storage.Encrypt = b
		case "port":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535, got %q", value)
			}
			cfg.Web.Port = n
		default:
			return fmt.Errorf("unknown key %q, valid keys: name, provider, model, api-key, encrypt, port", key)
		}

		if err := config.Save(cfg); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("Set %s", key))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
