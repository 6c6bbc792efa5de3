package service

import (
	"context"
	"encoding/json"

	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
)

type INotificationConsumer interface {
	Consume(ctx context.Context) error
}

type notificationConsumer struct {
	subscriber   message.Subscriber
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

// NewNotificationConsumer mails users whose payment failed. A nil email service
// only logs the notice.
func NewNotificationConsumer(
	subscriber message.Subscriber,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) INotificationConsumer {
	return &notificationConsumer{
		subscriber:   subscriber,
		topicName:    topicName,
		emailService: emailService,
		logger:       log,
	}
}

func (c *notificationConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *notificationConsumer) processMessage(msg *message.Message) {
	var payload PaymentFailedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error("NOTIFY", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	if c.emailService == nil || payload.Email == "" {
		c.logger.Info("NOTIFY", "Payment failure notice skipped", map[string]interface{}{
			"user_id": payload.UserId.String(),
		})
		msg.Ack()
		return
	}

	// Mail errors are logged and the message is still acked.
	if err := c.emailService.SendPaymentFailed(payload.Email, payload.Name); err != nil {
		c.logger.Error("NOTIFY", "Payment failure email not sent", map[string]interface{}{
			"user_id": payload.UserId.String(),
			"error":   err.Error(),
		})
	}
	msg.Ack()
}
