package aws

import (
	"context"
	"errors"
	"strings"
	"testing"

	"visa-bot/internal/common/config"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func createTestConfig() config.AlertsConfig {
	var cfg config.AlertsConfig
	cfg.AWS.Region = "us-east-1"
	cfg.Email.Enabled = true
	cfg.Email.FromEmail = "bot@example.com"
	cfg.Email.ToEmail = "ops@example.com"
	cfg.SMS.Enabled = true
	cfg.SMS.PhoneNumber = "+15550001111"
	return cfg
}

// ==========================
// Alert
// ==========================

func TestAlert_SendsOnBothChannels(t *testing.T) {
	var gotEmail *ses.SendEmailInput
	var gotSMS *sns.PublishInput

	mirror := NewAlertMirrorWithClients(createTestConfig(),
		&MockSESService{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			gotEmail = params
			return &ses.SendEmailOutput{}, nil
		}},
		&MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			gotSMS = params
			return &sns.PublishOutput{}, nil
		}},
	)

	err := mirror.Alert(context.Background(), "Payment pending", "User: Jane (ID: 42)")
	require.NoError(t, err)

	require.NotNil(t, gotEmail)
	assert.Equal(t, []string{"ops@example.com"}, gotEmail.Destination.ToAddresses)
	assert.Equal(t, "Payment pending", *gotEmail.Message.Subject.Data)
	assert.Equal(t, "User: Jane (ID: 42)", *gotEmail.Message.Body.Text.Data)
	assert.Equal(t, "bot@example.com", *gotEmail.Source)

	require.NotNil(t, gotSMS)
	assert.Equal(t, "+15550001111", *gotSMS.PhoneNumber)
	assert.Equal(t, "Payment pending\nUser: Jane (ID: 42)", *gotSMS.Message)
}

func TestAlert_EmailFailureDoesNotBlockSMS(t *testing.T) {
	smsSent := false
	mirror := NewAlertMirrorWithClients(createTestConfig(),
		&MockSESService{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		}},
		&MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			smsSent = true
			return &sns.PublishOutput{}, nil
		}},
	)

	err := mirror.Alert(context.Background(), "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email alert: throttled")
	assert.True(t, smsSent)
}

func TestAlert_DisabledChannelsAreSkipped(t *testing.T) {
	cfg := createTestConfig()
	cfg.Email.Enabled = false
	cfg.SMS.Enabled = false

	mirror := NewAlertMirrorWithClients(cfg,
		&MockSESService{SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			t.Fatal("email should not be sent")
			return nil, nil
		}},
		&MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			t.Fatal("sms should not be sent")
			return nil, nil
		}},
	)

	assert.NoError(t, mirror.Alert(context.Background(), "subject", "body"))
}

func TestAlert_TruncatesLongSMS(t *testing.T) {
	cfg := createTestConfig()
	cfg.Email.Enabled = false

	var message string
	mirror := NewAlertMirrorWithClients(cfg, nil,
		&MockSNSService{PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			message = *params.Message
			return &sns.PublishOutput{}, nil
		}},
	)

	require.NoError(t, mirror.Alert(context.Background(), "s", strings.Repeat("✅", 2000)))
	assert.Len(t, []rune(message), maxSMSLength)
}
