// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Links    LinksConfig    `mapstructure:"links"`
	Form     FormConfig     `mapstructure:"form"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type TelegramConfig struct {
	BotToken      string `mapstructure:"bot_token"`
	AdminChatID   int64  `mapstructure:"admin_chat_id"`
	AdminUsername string `mapstructure:"admin_username"`
	PollTimeout   int    `mapstructure:"poll_timeout"` // seconds
	SendTimeout   int    `mapstructure:"send_timeout"` // milliseconds
	Debug         bool   `mapstructure:"debug"`
}

// LinksConfig holds the external URLs rendered on keyboards.
type LinksConfig struct {
	PaymentURL string `mapstructure:"payment_url"`
	WebsiteURL string `mapstructure:"website_url"`
	GuideURL   string `mapstructure:"guide_url"`
	ContactURL string `mapstructure:"contact_url"`
}

type FormConfig struct {
	// RejectBlankAnswers re-prompts on whitespace-only answers instead of
	// storing them. Off by default.
	RejectBlankAnswers   bool     `mapstructure:"reject_blank_answers"`
	PopularNationalities []string `mapstructure:"popular_nationalities"`
}

type StoreConfig struct {
	Backend   string `mapstructure:"backend"` // "memory" or "redis"
	KeyPrefix string `mapstructure:"key_prefix"`
	TTL       int    `mapstructure:"ttl"` // seconds, 0 keeps records indefinitely
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AlertsConfig controls the out-of-band admin alert mirror.
type AlertsConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		ToEmail   string `mapstructure:"to_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled     bool   `mapstructure:"enabled"`
		PhoneNumber string `mapstructure:"phone_number"`
	} `mapstructure:"sms"`
}

// Enabled reports whether any alert channel is switched on.
func (a AlertsConfig) Enabled() bool {
	return a.Email.Enabled || a.SMS.Enabled
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

// DefaultPopularNationalities are offered as quick-pick buttons at step 3/8.
var DefaultPopularNationalities = []string{
	"India",
	"China",
	"Germany",
	"France",
	"Italy",
	"Spain",
}

// PollTimeoutDuration returns the long-poll timeout.
func (t TelegramConfig) PollTimeoutDuration() time.Duration {
	return time.Duration(t.PollTimeout) * time.Second
}

// TTLDuration returns the record expiry, zero meaning none.
func (s StoreConfig) TTLDuration() time.Duration {
	return time.Duration(s.TTL) * time.Second
}
