// internal/common/aws/alerts.go
package aws

import (
	"context"
	"errors"
	"fmt"

	"visa-bot/internal/common/config"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// maxSMSLength is the SNS cap for a single SMS publish.
const maxSMSLength = 1600

// AlertMirror copies admin-facing notices to email and SMS so that
// operators see payment claims and failures outside Telegram too.
type AlertMirror struct {
	cfg config.AlertsConfig
	ses SESService
	sns SNSService
}

// NewAlertMirror loads the default AWS credential chain for the configured
// region. Callers should only build a mirror when cfg.Enabled() is true.
func NewAlertMirror(ctx context.Context, cfg config.AlertsConfig) (*AlertMirror, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewAlertMirrorWithClients(cfg, NewSESClient(awsCfg), NewSNSClient(awsCfg)), nil
}

func NewAlertMirrorWithClients(cfg config.AlertsConfig, sesClient SESService, snsClient SNSService) *AlertMirror {
	return &AlertMirror{cfg: cfg, ses: sesClient, sns: snsClient}
}

// Alert sends subject and body on every enabled channel. A failing channel
// does not stop the others; all failures are returned joined.
func (m *AlertMirror) Alert(ctx context.Context, subject, body string) error {
	var errs []error

	if m.cfg.Email.Enabled {
		if err := m.sendEmail(ctx, subject, body); err != nil {
			errs = append(errs, fmt.Errorf("email alert: %w", err))
		}
	}
	if m.cfg.SMS.Enabled {
		if err := m.sendSMS(ctx, subject+"\n"+body); err != nil {
			errs = append(errs, fmt.Errorf("sms alert: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (m *AlertMirror) sendEmail(ctx context.Context, subject, body string) error {
	_, err := m.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{m.cfg.Email.ToEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(body)},
			},
		},
		Source: awssdk.String(m.cfg.Email.FromEmail),
	})
	return err
}

func (m *AlertMirror) sendSMS(ctx context.Context, message string) error {
	if runes := []rune(message); len(runes) > maxSMSLength {
		message = string(runes[:maxSMSLength])
	}
	_, err := m.sns.Publish(ctx, &sns.PublishInput{
		PhoneNumber: awssdk.String(m.cfg.SMS.PhoneNumber),
		Message:     awssdk.String(message),
	})
	return err
}
