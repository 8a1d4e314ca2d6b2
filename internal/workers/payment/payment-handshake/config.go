// internal/workers/payment/payment-handshake/config.go
package paymenthandshake

import (
	"time"

	"visa-bot/internal/common/config"
	"visa-bot/internal/models"
)

type Config struct {
	// AdminID is the only identity allowed to confirm payments.
	AdminID models.Identity
	Timeout time.Duration
}

func LoadConfig(tg config.TelegramConfig) *Config {
	return &Config{
		AdminID: models.Identity(tg.AdminChatID),
		Timeout: 30 * time.Second,
	}
}
