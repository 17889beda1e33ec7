// Package config is responsible for initializing the application's configuration.
// It uses the Viper library to read settings from a config file, environment
// variables, and command-line flags, providing a unified configuration system.
package config

import (
	"strings"

	"github.com/fightlytics/cageharvest/internal/logging"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// InitConfig initializes the application's configuration using Viper.
// It sets up default values, defines configuration search paths, and enables
// reading from environment variables. This function is designed to be called
// once at application startup so configuration is loaded before any command
// runs.
func InitConfig() {
	// --- Set Search Paths ---
	viper.SetConfigName("config")
	viper.AddConfigPath(".")                  // Current working directory
	viper.AddConfigPath("/etc/cageharvest/")  // System-wide configuration
	viper.AddConfigPath("$HOME/.cageharvest") // User-specific configuration

	// --- Set Defaults ---
	// Sensible defaults for every knob; a config file or environment variable
	// overrides them.
	viper.SetDefault("harvest.base_url", "http://ufcstats.com")
	viper.SetDefault("harvest.output_dir", "data")
	viper.SetDefault("harvest.partition_date", "")
	// The source site rate-limits aggressively; raising this past ~10 mostly
	// trades throughput for 429 responses.
	viper.SetDefault("harvest.concurrency", 10)
	viper.SetDefault("harvest.list_concurrency", 10)
	viper.SetDefault("harvest.max_retries", 5)
	viper.SetDefault("harvest.base_backoff", "1s")
	viper.SetDefault("harvest.request_timeout", "30s")
	viper.SetDefault("harvest.user_agent", "Mozilla/5.0 (compatible; cageharvest/1.0)")
	// Empty disables the Prometheus endpoint; set e.g. ":9090" to watch a run.
	viper.SetDefault("harvest.metrics_addr", "")

	// --- Environment Variables ---
	viper.SetEnvPrefix("CAGEHARVEST") // e.g. CAGEHARVEST_HARVEST_CONCURRENCY=4
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// --- Read Config File ---
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults and environment variables still
			// apply, so this is not fatal.
			logging.L.Debug("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
