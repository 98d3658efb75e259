package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"habit-planner/internal/model"
)

// Notifications are droppable by design; a short TTL keeps the push
// service from replaying stale alert minutes.
const webPushTTL = 60

// WebPush sends payloads to browser push endpoints using VAPID keys.
type WebPush struct {
	publicKey  string
	privateKey string
	subject    string
}

func NewWebPush(publicKey, privateKey, subject string) *WebPush {
	return &WebPush{publicKey: publicKey, privateKey: privateKey, subject: subject}
}

func (w *WebPush) Send(ctx context.Context, sub model.Subscription, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      w.subject,
		VAPIDPublicKey:  w.publicKey,
		VAPIDPrivateKey: w.privateKey,
		TTL:             webPushTTL,
	})
	if err != nil {
		return fmt.Errorf("web push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionExpired
	case resp.StatusCode >= 400:
		return fmt.Errorf("web push: endpoint returned %d", resp.StatusCode)
	}
	return nil
}
