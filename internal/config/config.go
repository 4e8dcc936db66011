package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FetchConfig holds configuration values loaded from flags, env, or config file.
type FetchConfig struct {
	ChainID           string
	APIKey            string
	Out               string
	Format            string
	Append            bool
	PGDSN             string
	Since             string
	Checkpoint        string
	CheckpointEnabled bool
	RPCURL            string
	Timeout           time.Duration
	LogLevel          string
	LogFile           string
	LogMaxSizeMB      int
	LogMaxBackups     int
	LogMaxAgeDays     int
}

// LoadFetch merges config file, environment variables, and flags into FetchConfig.
func LoadFetch(cfgFile string, flags *pflag.FlagSet) (FetchConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("TAGGER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("out", "./data/tags.jsonl")
	v.SetDefault("format", "jsonl")
	v.SetDefault("append", false)
	v.SetDefault("checkpoint", "./data/checkpoint.json")
	v.SetDefault("checkpoint-enabled", false)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-max-size", 10)
	v.SetDefault("log-max-backups", 3)
	v.SetDefault("log-max-age", 28)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return FetchConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := readConfig(v, cfgFile); err != nil {
		return FetchConfig{}, err
	}

	cfg := FetchConfig{
		ChainID:           strings.TrimSpace(v.GetString("chain-id")),
		APIKey:            strings.TrimSpace(v.GetString("api-key")),
		Out:               v.GetString("out"),
		Format:            strings.ToLower(v.GetString("format")),
		Append:            v.GetBool("append"),
		PGDSN:             v.GetString("pg-dsn"),
		Since:             v.GetString("since"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		RPCURL:            v.GetString("rpc"),
		Timeout:           v.GetDuration("timeout"),
		LogLevel:          v.GetString("log-level"),
		LogFile:           v.GetString("log-file"),
		LogMaxSizeMB:      v.GetInt("log-max-size"),
		LogMaxBackups:     v.GetInt("log-max-backups"),
		LogMaxAgeDays:     v.GetInt("log-max-age"),
	}

	return cfg, nil
}

func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}
