// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml (plus config.<environment>.yaml when
// present), the environment and a .env file found near the project root.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// TELEGRAM_BOT_TOKEN overrides telegram.bot_token and so on
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if config values are still empty after expansion.
// AutomaticEnv only covers keys that appear in a config file, so a bare
// environment with no YAML still needs these.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Telegram.BotToken == "" {
		if val := os.Getenv("TELEGRAM_BOT_TOKEN"); val != "" {
			cfg.Telegram.BotToken = val
		}
	}
	if val := os.Getenv("ADMIN_CHAT_ID"); val != "" {
		if id, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Telegram.AdminChatID = id
		}
	}
	if val := os.Getenv("PAYPAL_LINK"); val != "" {
		cfg.Links.PaymentURL = val
	}
	if val := os.Getenv("REDIS_ADDRESS"); val != "" && cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" && cfg.Database.Redis.Password == "" {
		cfg.Database.Redis.Password = val
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "visa-bot"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	// Telegram defaults
	if cfg.Telegram.AdminChatID == 0 {
		cfg.Telegram.AdminChatID = 7782365882
	}
	if cfg.Telegram.PollTimeout == 0 {
		cfg.Telegram.PollTimeout = 30
	}
	if cfg.Telegram.SendTimeout == 0 {
		cfg.Telegram.SendTimeout = 10000
	}

	// Link defaults
	if cfg.Links.PaymentURL == "" {
		cfg.Links.PaymentURL = "https://www.paypal.me/emiwayservices/125"
	}
	if cfg.Links.WebsiteURL == "" {
		cfg.Links.WebsiteURL = "http://emiway-visa-ae.tilda.ws/"
	}
	if cfg.Links.GuideURL == "" {
		cfg.Links.GuideURL = "https://example.com/guide.pdf"
	}
	if cfg.Links.ContactURL == "" {
		cfg.Links.ContactURL = "https://t.me/Kseniia_mln"
	}

	if len(cfg.Form.PopularNationalities) == 0 {
		cfg.Form.PopularNationalities = append([]string(nil), DefaultPopularNationalities...)
	}

	// Store defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = StoreBackendMemory
	}
	if cfg.Store.KeyPrefix == "" {
		cfg.Store.KeyPrefix = "visa-bot:form:"
	}

	// Alert defaults
	if cfg.Alerts.AWS.Region == "" {
		cfg.Alerts.AWS.Region = "us-east-1"
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required (or set TELEGRAM_BOT_TOKEN)")
	}
	if cfg.Telegram.AdminChatID <= 0 {
		return fmt.Errorf("telegram.admin_chat_id must be a positive user id")
	}
	if cfg.Telegram.PollTimeout < 0 {
		return fmt.Errorf("telegram.poll_timeout must not be negative")
	}

	switch cfg.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for the redis store")
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", StoreBackendMemory, StoreBackendRedis, cfg.Store.Backend)
	}
	if cfg.Store.TTL < 0 {
		return fmt.Errorf("store.ttl must not be negative")
	}

	if cfg.Alerts.Email.Enabled && (cfg.Alerts.Email.FromEmail == "" || cfg.Alerts.Email.ToEmail == "") {
		return fmt.Errorf("alerts.email.from_email and alerts.email.to_email are required when email alerts are enabled")
	}
	if cfg.Alerts.SMS.Enabled && cfg.Alerts.SMS.PhoneNumber == "" {
		return fmt.Errorf("alerts.sms.phone_number is required when sms alerts are enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
