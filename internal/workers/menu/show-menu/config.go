// internal/workers/menu/show-menu/config.go
package showmenu

import "time"

// No per-worker settings beyond the send timeout; links come from the catalog.
type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
