package harvest

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config captures every configuration knob that influences a harvest run.
// All values originate from Viper so the harvester can be configured via
// files, env vars, or CLI flags.
type Config struct {
	// BaseURL is the scheme://host prefix of the statistics site.
	BaseURL string
	// OutputDir is the root under which the date-partitioned dataset
	// directory is created.
	OutputDir string
	// PartitionDate overrides the dataset partition (YYYY-MM-DD). Empty
	// means "today".
	PartitionDate string
	// Concurrency bounds in-flight detail-page fetches.
	Concurrency int
	// ListConcurrency bounds in-flight enumeration fetches (the alphabetic
	// fighter listing pages).
	ListConcurrency int
	// MaxRetries bounds backed-off retries on rate-limit responses; one
	// final unconditional attempt follows.
	MaxRetries int
	// BaseBackoff is the first backoff interval; it doubles per attempt.
	BaseBackoff time.Duration
	RequestTimeout time.Duration
	UserAgent      string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		BaseURL:         v.GetString("harvest.base_url"),
		OutputDir:       v.GetString("harvest.output_dir"),
		PartitionDate:   v.GetString("harvest.partition_date"),
		Concurrency:     v.GetInt("harvest.concurrency"),
		ListConcurrency: v.GetInt("harvest.list_concurrency"),
		MaxRetries:      v.GetInt("harvest.max_retries"),
		BaseBackoff:     v.GetDuration("harvest.base_backoff"),
		RequestTimeout:  v.GetDuration("harvest.request_timeout"),
		UserAgent:       v.GetString("harvest.user_agent"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("harvest.base_url must be set")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("harvest.output_dir must be set")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("harvest.concurrency must be > 0")
	}
	if c.ListConcurrency <= 0 {
		return fmt.Errorf("harvest.list_concurrency must be > 0")
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("harvest.max_retries must be > 0")
	}
	if c.BaseBackoff <= 0 {
		return fmt.Errorf("harvest.base_backoff must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("harvest.request_timeout must be > 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("harvest.user_agent must be set")
	}
	return nil
}

// EventsURL returns the completed-events listing endpoint.
func (c Config) EventsURL() string {
	return c.BaseURL + "/statistics/events/completed?page=all"
}

// FighterListURL returns the listing endpoint for one alphabetic partition.
func (c Config) FighterListURL(letter rune) string {
	return fmt.Sprintf("%s/statistics/fighters?char=%c&page=all", c.BaseURL, letter)
}

// FighterDetailURL returns the profile endpoint for one fighter id.
func (c Config) FighterDetailURL(id string) string {
	return c.BaseURL + "/fighter-details/" + id
}

// PartitionDir resolves the dataset directory for this run. Datasets are
// partitioned by date so distinct harvest days accumulate side by side.
func (c Config) PartitionDir(now time.Time) string {
	date := c.PartitionDate
	if date == "" {
		date = now.Format("2006-01-02")
	}
	return filepath.Join(c.OutputDir, date)
}
