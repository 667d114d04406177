// internal/notify/notify.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"churn-inference/internal/common/config"
	"churn-inference/internal/common/errors"
	"churn-inference/internal/common/logger"
	"churn-inference/internal/prediction"
)

// snsPublisher and sesSender cover the two AWS calls the notifier makes,
// so tests can swap in fakes.
type snsPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type sesSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// ChurnNotifier publishes churn alerts to an SNS topic and, when
// configured, mails a summary via SES. Both deliveries are best-effort.
type ChurnNotifier struct {
	cfg    config.NotificationConfig
	sns    snsPublisher
	ses    sesSender
	logger logger.Logger
}

// NewChurnNotifier builds the notifier with real AWS clients.
func NewChurnNotifier(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*ChurnNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return &ChurnNotifier{
		cfg:    cfg,
		sns:    sns.NewFromConfig(awsCfg),
		ses:    ses.NewFromConfig(awsCfg),
		logger: log,
	}, nil
}

// NotifyChurn delivers one alert over every configured channel. The first
// delivery failure is returned so the caller can log it, but a topic
// failure does not skip the email channel.
func (n *ChurnNotifier) NotifyChurn(ctx context.Context, alert prediction.ChurnAlert) error {
	var firstErr error

	if n.cfg.TopicARN != "" {
		if err := n.publishTopic(ctx, alert); err != nil {
			firstErr = err
		}
	}
	if n.cfg.EmailTo != "" {
		if err := n.sendEmail(ctx, alert); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (n *ChurnNotifier) publishTopic(ctx context.Context, alert prediction.ChurnAlert) error {
	body, err := json.Marshal(map[string]interface{}{
		"event":       "customer_churn_predicted",
		"customerId":  alert.CustomerID,
		"probability": alert.Probability,
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("sns", err)
	}

	message := string(body)
	subject := "Customer churn predicted"
	_, err = n.sns.Publish(ctx, &sns.PublishInput{
		TopicArn: &n.cfg.TopicARN,
		Message:  &message,
		Subject:  &subject,
	})
	if err != nil {
		n.logger.Error("sns publish failed", map[string]interface{}{
			"customer_id": alert.CustomerID,
			"error":       err.Error(),
		})
		return errors.NewNotificationSendFailedError("sns", err)
	}
	return nil
}

func (n *ChurnNotifier) sendEmail(ctx context.Context, alert prediction.ChurnAlert) error {
	subject := "Customer churn predicted"
	body := fmt.Sprintf(
		"Customer %s is predicted to churn with probability %.2f.",
		alert.CustomerID, alert.Probability,
	)

	_, err := n.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: &n.cfg.EmailFrom,
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.cfg.EmailTo},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: &subject},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: &body},
			},
		},
	})
	if err != nil {
		n.logger.Error("ses send failed", map[string]interface{}{
			"customer_id": alert.CustomerID,
			"error":       err.Error(),
		})
		return errors.NewNotificationSendFailedError("ses", err)
	}
	return nil
}
