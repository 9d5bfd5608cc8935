package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultCDXEndpoint is the Wayback Machine CDX index API
	DefaultCDXEndpoint = "https://web.archive.org/cdx/search/cdx"

	// DefaultFreeLimit is the maximum number of records requested per run
	DefaultFreeLimit = 50000

	// DefaultTimeout is the hard deadline for the single CDX request
	DefaultTimeout = 60 * time.Second
)

// Config holds runtime settings for the extractor
type Config struct {
	CDXEndpoint string
	FreeLimit   int
	Timeout     time.Duration
}

// FromEnv builds a Config from environment variables, falling back to
// defaults. Callers are expected to have loaded .env (godotenv) first.
//
//	WAYBACK_CDX_URL          endpoint override
//	WAYBACK_FREE_LIMIT       record ceiling override
//	WAYBACK_TIMEOUT_SECONDS  request timeout override
func FromEnv() Config {
	return Config{
		CDXEndpoint: envString("WAYBACK_CDX_URL", DefaultCDXEndpoint),
		FreeLimit:   envInt("WAYBACK_FREE_LIMIT", DefaultFreeLimit),
		Timeout:     time.Duration(envInt("WAYBACK_TIMEOUT_SECONDS", int(DefaultTimeout/time.Second))) * time.Second,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
