package notification

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// Pusher delivers a single push notification to a device token.
type Pusher interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCMSender is the subset of *messaging.Client used for delivery.
type FCMSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMPusher is the production Pusher backed by Firebase Cloud Messaging.
type FCMPusher struct {
	client FCMSender
}

func NewFCMPusher(client FCMSender) (*FCMPusher, error) {
	if client == nil {
		return nil, errors.New("notification service initialization error: messaging client is nil")
	}
	return &FCMPusher{client: client}, nil
}

// Send pushes a high priority alert. The returned message ID is not inspected.
func (p *FCMPusher) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return errors.New("Send: empty FCM token")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := p.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("Send: failed to send FCM message: %w", err)
	}
	return nil
}
