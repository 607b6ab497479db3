package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type sqsNotifier struct {
	client   *sqs.Client
	queueURL string
	logger   logger.Logger
}

// NewSQSNotifier creates a notifier that hands notifications to an SQS queue
// for an external delivery worker to pick up
func NewSQSNotifier(client *sqs.Client, queueURL string, log logger.Logger) Notifier {
	return &sqsNotifier{
		client:   client,
		queueURL: queueURL,
		logger:   log.With(logger.String("component", "sqs_notifier")),
	}
}

func (n *sqsNotifier) SendNotification(ctx context.Context, payload *domain.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	bodyStr := string(body)
	result, err := n.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &n.queueURL,
		MessageBody: &bodyStr,
	})
	if err != nil {
		n.logger.Error("failed to enqueue notification",
			logger.Int64("recipient_id", payload.RecipientID),
			logger.Error(err))
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	n.logger.Info("notification enqueued",
		logger.Int64("recipient_id", payload.RecipientID),
		logger.String("message_id", messageID))
	return nil
}
