package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Interface   string
	CapturePath string
	ManufPath   string
	OUIDBPath   string
	MetricsAddr string
	ReportPath  string
	TracePath   string
	Debug       bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Interface = getEnv("AIRSCOUT_INTERFACE", "")
	cfg.CapturePath = getEnv("AIRSCOUT_CAPTURE", "capture.pcap")
	cfg.ManufPath = getEnv("AIRSCOUT_MANUF", "")
	cfg.OUIDBPath = getEnv("AIRSCOUT_OUI_DB", getDefaultOUIDBPath())
	cfg.MetricsAddr = getEnv("AIRSCOUT_METRICS", "")
	cfg.ReportPath = getEnv("AIRSCOUT_REPORT", "")
	cfg.TracePath = getEnv("AIRSCOUT_TRACE", "")
	cfg.Debug = getEnvBool("AIRSCOUT_DEBUG", false)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Interface, "i", cfg.Interface, "Wireless interface to sniff on (empty to auto-detect)")
	flag.StringVar(&cfg.CapturePath, "capture", cfg.CapturePath, "Path to write the pcap capture file")
	flag.StringVar(&cfg.ManufPath, "manuf", cfg.ManufPath, "Path to a Wireshark manuf vendor file (empty to disable)")
	flag.StringVar(&cfg.OUIDBPath, "oui-db", cfg.OUIDBPath, "Path to the SQLite OUI registry (empty to disable)")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics listen address (empty to disable)")
	flag.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "Path to write a PDF survey report on exit (empty to disable)")
	flag.StringVar(&cfg.TracePath, "trace", cfg.TracePath, "Path to write trace spans (empty for stdout)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")

	flag.Parse()

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultOUIDBPath returns the default OUI registry path in the user's
// home directory. Returns empty (registry disabled) when no registry file
// exists there.
func getDefaultOUIDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory: %v", err)
		return ""
	}
	path := filepath.Join(home, ".airscout", "oui.db")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
