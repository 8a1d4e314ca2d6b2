// internal/workers/form/step-sequencer/config.go
package stepsequencer

import (
	"time"

	"visa-bot/internal/common/config"
)

type Config struct {
	// RejectBlankAnswers re-prompts on whitespace-only text instead of
	// storing an empty answer.
	RejectBlankAnswers bool
	Timeout            time.Duration
}

func LoadConfig(form config.FormConfig) *Config {
	return &Config{
		RejectBlankAnswers: form.RejectBlankAnswers,
		Timeout:            15 * time.Second,
	}
}
