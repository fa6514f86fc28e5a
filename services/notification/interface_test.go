package notification

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockFCMSender struct {
	SendFunc func(ctx context.Context, message *messaging.Message) (string, error)
	Sent     []*messaging.Message
}

func (m *MockFCMSender) Send(ctx context.Context, message *messaging.Message) (string, error) {
	m.Sent = append(m.Sent, message)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, message)
	}
	return "projects/test/messages/1", nil
}

func TestNewFCMPusher_NilClient(t *testing.T) {
	_, err := NewFCMPusher(nil)
	assert.Error(t, err)
}

func TestFCMPusher_Send(t *testing.T) {
	sender := &MockFCMSender{}
	pusher, err := NewFCMPusher(sender)
	require.NoError(t, err)

	data := map[string]string{"appointmentId": "A1", "receiverRole": "patient"}
	require.NoError(t, pusher.Send(context.Background(), "tok", "Rappel", "See you at 10:00", data))

	require.Len(t, sender.Sent, 1)
	msg := sender.Sent[0]
	assert.Equal(t, "tok", msg.Token)
	assert.Equal(t, "Rappel", msg.Notification.Title)
	assert.Equal(t, "See you at 10:00", msg.Notification.Body)
	assert.Equal(t, data, msg.Data)
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Equal(t, "alert", msg.APNS.Headers["apns-push-type"])
}

func TestFCMPusher_SendErrors(t *testing.T) {
	sender := &MockFCMSender{
		SendFunc: func(ctx context.Context, message *messaging.Message) (string, error) {
			return "", errors.New("registration-token-not-registered")
		},
	}
	pusher, err := NewFCMPusher(sender)
	require.NoError(t, err)

	assert.Error(t, pusher.Send(context.Background(), "tok", "t", "b", nil))
	assert.Error(t, pusher.Send(context.Background(), "", "t", "b", nil))
	assert.Len(t, sender.Sent, 1)
}
