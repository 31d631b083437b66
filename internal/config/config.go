package config

import (
	"fmt"
	"os"
	"strings"
)

// Config captures service configuration. Everything comes from the
// environment so main stays lean.
type Config struct {
	ListenAddr  string
	DatabaseURL string

	DefaultDaysBack int
	MaxVariations   int
	BatchSize       int
	ScanLimitPerTLD int
	LengthTolerance int
	MaxParallel     int

	// InitTLDs, when set, creates those registry partitions at startup.
	// Local development only; production registries are fed externally.
	InitTLDs []string
}

// Load builds a Config from environment variables with defaults tuned for
// local development.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DefaultDaysBack: getenvInt("DEFAULT_DAYS_BACK", 7),
		MaxVariations:   getenvInt("MAX_VARIATIONS", 10000),
		BatchSize:       getenvInt("BATCH_SIZE", 1000),
		ScanLimitPerTLD: getenvInt("SCAN_LIMIT_PER_TLD", 50000),
		LengthTolerance: getenvInt("LENGTH_TOLERANCE", 3),
		MaxParallel:     getenvInt("MAX_PARALLEL_QUERIES", 8),
	}
	if v := os.Getenv("REGISTRY_INIT_TLDS"); v != "" {
		for _, tld := range strings.Split(v, ",") {
			if tld = strings.TrimSpace(tld); tld != "" {
				cfg.InitTLDs = append(cfg.InitTLDs, tld)
			}
		}
	}
	if cfg.DatabaseURL == "" {
		// Not fatal for early local runs; warn via error value so callers
		// can decide.
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		if _, err := fmt.Sscanf(v, "%d", &out); err == nil {
			return out
		}
	}
	return def
}
