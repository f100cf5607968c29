package notification

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"quotecompare/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// PushSender publishes push notifications to an FCM topic.
type PushSender interface {
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error
}

// FCMPush sends through Firebase Cloud Messaging.
type FCMPush struct {
	client *messaging.Client
}

func NewFCMPush(client *messaging.Client) *FCMPush {
	return &FCMPush{client: client}
}

func (p *FCMPush) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: topic,
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
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	id, err := p.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send FCM topic message to %s: %w", topic, err)
	}
	utils.GetLogger().Debug("FCM topic message sent", zap.String("topic", topic), zap.String("messageId", id))
	return nil
}

// LogPush stands in when Firebase messaging is not configured.
type LogPush struct{}

func (LogPush) SendToTopic(_ context.Context, topic, title, body string, _ map[string]string) error {
	utils.GetLogger().Info("mock vendor alert",
		zap.String("topic", topic), zap.String("title", title), zap.String("body", body))
	return nil
}

var topicUnsafe = regexp.MustCompile(`[^a-zA-Z0-9\-_.~%]+`)

// VendorTopic maps a service category to its FCM topic name.
func VendorTopic(prefix, serviceType string) string {
	s := strings.ToLower(strings.TrimSpace(serviceType))
	s = topicUnsafe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "general"
	}
	return prefix + s
}
