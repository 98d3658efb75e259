// Package push delivers notification payloads to user subscriptions
// over channel-specific transports.
package push

import (
	"context"
	"errors"
	"fmt"

	"habit-planner/internal/model"
)

// Payload is the notification body delivered to a subscription.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// ErrSubscriptionExpired signals that the endpoint is permanently
// gone and its subscription record should be deleted.
var ErrSubscriptionExpired = errors.New("subscription expired")

// Sender delivers one payload to one subscription.
type Sender interface {
	Send(ctx context.Context, sub model.Subscription, payload Payload) error
}

// Dispatcher routes a payload to the sender matching the
// subscription's channel kind. A nil sender for a kind is a delivery
// error, not an expiry: the subscription survives until its channel
// is configured again.
type Dispatcher struct {
	WebPush  Sender
	Telegram Sender
}

func (d *Dispatcher) Send(ctx context.Context, sub model.Subscription, payload Payload) error {
	switch sub.Kind {
	case model.SubscriptionTelegram:
		if d.Telegram == nil {
			return fmt.Errorf("telegram channel not configured")
		}
		return d.Telegram.Send(ctx, sub, payload)
	default:
		if d.WebPush == nil {
			return fmt.Errorf("web push channel not configured")
		}
		return d.WebPush.Send(ctx, sub, payload)
	}
}
