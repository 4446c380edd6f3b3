package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// ConfigurationError reports missing or invalid configuration. It is fatal
// and is raised before any league data is fetched.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

type Config struct {
	AlertType   string  `envconfig:"ALERT_TYPE" default:"weekly"`
	Threshold   float64 `envconfig:"OWNERSHIP_THRESHOLD" default:"70"`
	LogDir      string  `envconfig:"LOG_DIR" default:"logs"`
	SnapshotDir string  `envconfig:"SNAPSHOT_DIR"`
	Timezone    string  `envconfig:"TIMEZONE" default:"America/Chicago"`
	HealthAddr  string  `envconfig:"HEALTH_ADDR" default:":8080"`

	Sleeper     Sleeper
	TelegramBot TelegramBot
	Schedule    Schedule
}

type Sleeper struct {
	LeagueID          string `envconfig:"SLEEPER_LEAGUE_ID" required:"true"`
	UserID            string `envconfig:"SLEEPER_USER_ID"`
	BaseURL           string `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	RequestsPerMinute int    `envconfig:"SLEEPER_REQUESTS_PER_MINUTE" default:"600"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID string `envconfig:"TELEGRAM_CHAT_ID"`
}

// Schedule holds standard five-field cron specs. An empty spec disables the job.
type Schedule struct {
	Weekly string `envconfig:"SCHEDULE_WEEKLY" default:"30 7 * * 2"`
	Daily  string `envconfig:"SCHEDULE_DAILY" default:"0 9 * * *"`
	Live   string `envconfig:"SCHEDULE_LIVE" default:"*/10 12-23 * * 0,1,4"`
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	c.AlertType = strings.ToLower(strings.TrimSpace(c.AlertType))

	if strings.TrimSpace(c.Sleeper.LeagueID) == "" {
		return nil, &ConfigurationError{Field: "SLEEPER_LEAGUE_ID", Err: errors.New("required")}
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return nil, &ConfigurationError{Field: "OWNERSHIP_THRESHOLD", Err: fmt.Errorf("%v is outside 0-100", c.Threshold)}
	}
	if c.Sleeper.RequestsPerMinute <= 0 {
		return nil, &ConfigurationError{Field: "SLEEPER_REQUESTS_PER_MINUTE", Err: errors.New("must be positive")}
	}

	for field, spec := range map[string]string{
		"SCHEDULE_WEEKLY": c.Schedule.Weekly,
		"SCHEDULE_DAILY":  c.Schedule.Daily,
		"SCHEDULE_LIVE":   c.Schedule.Live,
	} {
		if err := ValidateCron(spec); err != nil {
			return nil, &ConfigurationError{Field: field, Err: err}
		}
	}

	return &c, nil
}

// ValidateCron checks a standard cron spec. Empty specs are allowed.
func ValidateCron(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// HasTelegram reports whether both Telegram credentials are set.
func (c TelegramBot) HasTelegram() bool {
	return c.Token != "" && c.ChatID != ""
}

// NumericChatID returns the chat ID as an int64. ok is false for channel
// usernames such as "@league_alerts".
func (c TelegramBot) NumericChatID() (id int64, ok bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.ChatID), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
