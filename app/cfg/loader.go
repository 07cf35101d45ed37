package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// DefaultProxies is the relay chain used when none is configured: the
// same public CORS relays the browser client shipped with, tried in
// this order.
const DefaultProxies = "https://corsproxy.io/?%s," +
	"https://api.allorigins.win/raw?url=%s," +
	"https://api.codetabs.com/v1/proxy?quest=%s"

type rawCfg struct {
	// Application configuration
	Port     string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DBPath   string `long:"db-path" env:"DB_PATH" default:"./rssdeck.db" description:"Path to the SQLite database file"`
	FeedsDir string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing feed subscription files"`

	// Fetch pipeline configuration
	Proxies      string `long:"proxies" env:"PROXIES" description:"Comma-separated CORS proxy URL templates, each with one %s placeholder, tried in order"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"rss-deck/1.0" description:"User agent string for HTTP requests"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Per-proxy fetch timeout in seconds"`

	// Background refresh configuration
	WorkerCount       int `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for feed refresh"`
	SchedulerInterval int `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"30" description:"Scheduler interval in seconds"`

	// API configuration
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for mutating endpoints (optional)"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		DBPath:            raw.DBPath,
		FeedsDir:          raw.FeedsDir,
		Proxies:           cmp.Or(raw.Proxies, DefaultProxies),
		UserAgent:         raw.UserAgent,
		FetchTimeout:      raw.FetchTimeout,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		APIAccessKey:      raw.APIAccessKey,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
