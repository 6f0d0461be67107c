package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads configuration into cfg. It reads, in order: an optional
// config.yml, an optional .env file, and the process environment. Later
// sources win. Environment variables are bound automatically by converting
// UPPER_SNAKE keys into the nested key variants viper understands, so
// ASR_DEEPGRAM_API_KEY reaches asr.deepgram_api_key without explicit binds.
func Load(cfg *Config, opts ...Option) error {
	var lo loaderOptions
	for _, opt := range opts {
		opt(&lo)
	}
	if lo.configFile == "" {
		lo.configFile = findFirst("./config.yml", "./config/config.yml")
	}
	if lo.envFile == "" {
		lo.envFile = findFirst("./.env")
	}

	v := viper.New()

	if lo.configFile != "" {
		v.SetConfigFile(lo.configFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Printf("[config] warning: failed to load config file %s: %v\n", lo.configFile, err)
		}
	}

	v.AutomaticEnv()
	autoBindEnvVars(v)

	if lo.envFile != "" {
		if err := godotenv.Load(lo.envFile); err != nil {
			fmt.Printf("[config] warning: failed to load .env file %s: %v\n", lo.envFile, err)
		} else {
			// Re-bind so variables introduced by the .env file are visible.
			autoBindEnvVars(v)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg.Validate()
}

type loaderOptions struct {
	configFile string
	envFile    string
}

// Option customizes Load.
type Option func(*loaderOptions)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(lo *loaderOptions) { lo.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(lo *loaderOptions) { lo.envFile = path }
}

func findFirst(paths ...string) string {
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// autoBindEnvVars binds environment variables to viper by converting
// UPPER_CASE_WITH_UNDERSCORES into the possible nested key formats.
func autoBindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants creates the key variants for environment variable binding.
// Examples:
//
//	ASR_DEEPGRAM_API_KEY -> [asr_deepgram_api_key, asr.deepgram.api.key, asr.deepgram_api_key, ...]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Progressive nesting: prefix as dotted path, rest joined by underscores.
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return dedupe(variants)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
