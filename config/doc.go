// Package config loads and validates service configuration from YAML files
// and environment variables (via viper and godotenv), and defines the typed
// configuration tree for the ChaosRegistry service.
package config
