package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/moorworks/peatshelf/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Peatshelf configuration",
	Long: `Manage Peatshelf configuration.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (PEATSHELF_* for shelfctl, plain names for the daemon)
3. Config file (~/.peatshelf/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective daemon configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cf := viper.ConfigFileUsed(); cf != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", cf)
		}

		cfg := config.FromEnv()
		view := struct {
			Mode           string   `yaml:"mode"`
			HTTPAddr       string   `yaml:"http_addr"`
			DBDriver       string   `yaml:"db_driver"`
			DBDSN          string   `yaml:"db_dsn"`
			ManifestPath   string   `yaml:"manifest_path"`
			MappingPath    string   `yaml:"mapping_path"`
			CoversDir      string   `yaml:"covers_dir"`
			CoverBase      string   `yaml:"cover_base"`
			BankPath       string   `yaml:"bank_path"`
			SessionBackend string   `yaml:"session_backend"`
			RedisURL       string   `yaml:"redis_url"`
			SessionTTL     string   `yaml:"session_ttl"`
			CORSOnline     []string `yaml:"cors_origins_online"`
			CORSOffline    []string `yaml:"cors_origins_offline"`
		}{
			Mode:           string(cfg.Mode),
			HTTPAddr:       cfg.HTTPAddr,
			DBDriver:       cfg.DBDriver,
			DBDSN:          cfg.DBDSN,
			ManifestPath:   cfg.ManifestPath,
			MappingPath:    cfg.MappingPath,
			CoversDir:      cfg.CoversDir,
			CoverBase:      cfg.CoverBase,
			BankPath:       cfg.BankPath,
			SessionBackend: cfg.SessionBackend,
			RedisURL:       cfg.RedisURL,
			SessionTTL:     cfg.SessionTTL.String(),
			CORSOnline:     cfg.CORSOriginsOnline,
			CORSOffline:    cfg.CORSOriginsOffline,
		}

		out, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
