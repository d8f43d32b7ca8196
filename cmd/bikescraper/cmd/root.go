// Package cmd implements the bikescraper command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RolandGoud/bikescraper/internal/config"
	"github.com/RolandGoud/bikescraper/pkg/logging"
	"github.com/RolandGoud/bikescraper/pkg/store"
	"github.com/RolandGoud/bikescraper/pkg/store/files"
	"github.com/RolandGoud/bikescraper/pkg/store/sqlite"
)

var (
	configFile   string
	brandsFile   string
	storeBackend string
	storePath    string
	verbose      bool
	quiet        bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bikescraper",
	Short: "Cross-brand bike catalog reconciliation",
	Long: `Bikescraper maintains a master dataset of bike listings across brands.

Raw per-brand snapshots are normalized onto one canonical schema, missing
specifications are inferred from correlated evidence, and each run is merged
into a persistent dataset that tracks when every bike appeared, was last
seen, and went off the market.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.bikescraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&brandsFile, "brands", "", "brand mapping file (built-in Trek and Canyon mappings when unset)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "dataset store backend: files or sqlite")
	rootCmd.PersistentFlags().StringVar(&storePath, "data", "", "dataset path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-warning logs")

	for _, flag := range []string{"brands", "store", "data", "verbose", "quiet"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}

	viper.SetDefault("store", "files")
	viper.SetDefault("data", "data/master.yaml")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bikescraper")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix("BIKESCRAPER")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.InfoLevel
	if verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if quiet || viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	cfg := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		AddCaller: level <= zerolog.DebugLevel,
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}

	logging.Configure(cfg)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}

// loadIngestionConfig loads the brand mapping configuration.
func loadIngestionConfig() (*config.Ingestion, error) {
	return config.Load(viper.GetString("brands"))
}

// openStore opens the configured dataset store.
func openStore() (store.Store, error) {
	backend := viper.GetString("store")
	path := viper.GetString("data")

	switch backend {
	case "files":
		return files.New(path), nil
	case "sqlite":
		if path == "data/master.yaml" {
			path = "data/master.db"
		}
		return sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected files or sqlite)", backend)
	}
}
