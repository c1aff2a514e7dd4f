package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
// Everything here is fixed at startup for the whole run.
type Config struct {
	GammaBase string
	DataBase  string
	SiteBase  string

	Query string
	Tags  []string

	GammaPageSize int
	TradePageSize int
	Timeout       time.Duration
	MaxRetries    int
	Backoff       float64
	WindowStart   string

	Out    string
	Format string
	PGDSN  string

	LogLevel string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POLYSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("gamma-base", "https://gamma-api.polymarket.com")
	v.SetDefault("data-base", "https://data-api.polymarket.com")
	v.SetDefault("site-base", "https://polymarket.com")
	v.SetDefault("gamma-page-size", 250)
	v.SetDefault("trade-page-size", 250)
	v.SetDefault("timeout", 20*time.Second)
	v.SetDefault("max-retries", 5)
	v.SetDefault("backoff", 1.8)
	v.SetDefault("window-start", "2025-01-01T00:00:00Z")
	v.SetDefault("out", "./data/events.csv")
	v.SetDefault("format", "csv")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		GammaBase:     v.GetString("gamma-base"),
		DataBase:      v.GetString("data-base"),
		SiteBase:      v.GetString("site-base"),
		Query:         v.GetString("query"),
		Tags:          getStringSlice(v, "tags"),
		GammaPageSize: v.GetInt("gamma-page-size"),
		TradePageSize: v.GetInt("trade-page-size"),
		Timeout:       v.GetDuration("timeout"),
		MaxRetries:    v.GetInt("max-retries"),
		Backoff:       v.GetFloat64("backoff"),
		WindowStart:   v.GetString("window-start"),
		Out:           v.GetString("out"),
		Format:        v.GetString("format"),
		PGDSN:         v.GetString("pg-dsn"),
		LogLevel:      v.GetString("log-level"),
	}

	return cfg, nil
}

// ParseTimestamp parses a timestamp value (unix seconds or RFC3339); empty
// input means unbounded and parses to zero.
func ParseTimestamp(input string) (int64, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}

	if isNumeric(input) {
		val, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return 0, err
		}
		return val, nil
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return 0, err
	}
	return tm.Unix(), nil
}

// ParseTagIDs converts the tag id strings into integers.
func ParseTagIDs(tags []string) ([]int, error) {
	out := make([]int, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		id, err := strconv.Atoi(tag)
		if err != nil {
			return nil, fmt.Errorf("invalid tag id %q", tag)
		}
		out = append(out, id)
	}
	return out, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
