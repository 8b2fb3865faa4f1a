package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configShowSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `Settings are stored in ~/.docvec/config.toml, or the file given with
--config (a .yaml or .yml path is written as YAML).

Environment variables override stored settings: EMBED_MODEL, QDRANT_HOST,
QDRANT_PORT, QDRANT_COLLECTION, QDRANT_API_KEY, and OPENAI_API_KEY or
GEMINI_API_KEY for the matching provider. A .env file in the working
directory is read first.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Validates and stores a setting. API keys may be omitted from the
command line; they are then read from stdin without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the embedding provider is reachable",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

func init() {
	configCmd.Flags().BoolVar(&configShowSecrets, "show-secrets", false, "print API keys unmasked")
	configGetCmd.Flags().BoolVar(&configShowSecrets, "show-secrets", false, "print API keys unmasked")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	for _, key := range svc.Keys() {
		value, err := svc.Value(key)
		if err != nil {
			return err
		}
		if isSecretKey(key) && !configShowSecrets {
			value = maskSecret(value)
		}
		cmd.Printf("%-22s %s\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	value, err := svc.Value(args[0])
	if err != nil {
		return err
	}
	if isSecretKey(args[0]) && !configShowSecrets {
		value = maskSecret(value)
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case isSecretKey(key):
		cmd.Printf("%s: ", key)
		value = readSecret(cmd.InOrStdin())
		cmd.Println()
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	if err := svc.Set(key, value); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	cmd.Println(svc.ConfigPath())
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	for _, key := range svc.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runConfigCheck(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return err
	}

	cmd.Printf("Checking %s (%s)... ", settings.Embedding.Provider.Description(), settings.Embedding.Model)
	if err := svc.ValidateEmbeddingConfig(); err != nil {
		cmd.Println("failed")
		return fmt.Errorf("embedding provider check failed: %w", err)
	}
	cmd.Println("ok")
	return nil
}
