package cfg

type Cfg struct {
	// Application configuration
	Port     string
	DBPath   string
	FeedsDir string

	// Fetch pipeline configuration
	Proxies      string
	UserAgent    string
	FetchTimeout int

	// Background refresh configuration
	WorkerCount       int
	SchedulerInterval int

	// API configuration
	APIAccessKey string

	// Application metadata
	Debug   bool
	Version string
}
