// Package config loads endpoint configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/coolbeans/geolink/pkg/logger"
)

// Default endpoint URLs for the public SPARQL sources.
const (
	DefaultDBpediaEndpoint  = "https://dbpedia.org/sparql"
	DefaultWikidataEndpoint = "https://query.wikidata.org/sparql"
)

// Default client tuning values.
const (
	DefaultRequestInterval = 1 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
)

// Config holds endpoint URLs and HTTP client tuning for a pipeline run.
type Config struct {
	// DBpediaEndpoint is the SPARQL endpoint used for redirect resolution,
	// sameAs aggregation and category discovery.
	DBpediaEndpoint string

	// WikidataEndpoint is the SPARQL endpoint used for city verification and
	// type-hierarchy queries.
	WikidataEndpoint string

	// RequestInterval is the minimum interval between requests per endpoint.
	RequestInterval time.Duration

	// RequestTimeout is the per-request HTTP timeout.
	RequestTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and the process
// environment, falling back to defaults for anything unset.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}

	return Config{
		DBpediaEndpoint:  getEnvString("GEOLINK_DBPEDIA_ENDPOINT", DefaultDBpediaEndpoint),
		WikidataEndpoint: getEnvString("GEOLINK_WIKIDATA_ENDPOINT", DefaultWikidataEndpoint),
		RequestInterval:  getEnvDuration("GEOLINK_REQUEST_INTERVAL", DefaultRequestInterval),
		RequestTimeout:   getEnvDuration("GEOLINK_REQUEST_TIMEOUT", DefaultRequestTimeout),
	}
}

func getEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
