package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coachwell/internal/domain/reminder"
	"coachwell/internal/pkg/errs"
)

// WebhookNotifier posts reminder payloads to the delivery service that owns
// the actual email/SMS transport.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type reminderPayload struct {
	Kind           string    `json:"kind"`
	ContactAddress string    `json:"contact_address"`
	AppointmentID  string    `json:"appointment_id"`
	DisplayName    string    `json:"display_name"`
	SessionTime    time.Time `json:"session_time"`
	JoinURL        *string   `json:"join_url,omitempty"`
}

func (n *WebhookNotifier) Send(
	ctx context.Context,
	kind reminder.Kind,
	contactAddress string,
	details Details,
) error {
	body, err := json.Marshal(reminderPayload{
		Kind:           string(kind),
		ContactAddress: contactAddress,
		AppointmentID:  details.AppointmentID.String(),
		DisplayName:    details.DisplayName,
		SessionTime:    details.SessionTime.UTC(),
		JoinURL:        details.JoinURL,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode reminder payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build reminder request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "reminder delivery failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errs.New(fmt.Sprintf("reminder webhook returned status %d", resp.StatusCode))
	}
	return nil
}
