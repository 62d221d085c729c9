// notifier/webhook.go
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	soxlite_errors "github.com/soxlite/api/errors"
	logger "github.com/soxlite/api/logging"
	"github.com/soxlite/api/model"
	"github.com/soxlite/api/util"
)

// EventAlertsRaised carries an AlertBatch to the webhook sender
const EventAlertsRaised = "alerts.raised"

// Dispatcher forwards alert findings to the configured sink
type Dispatcher interface {
	// Dispatch queues a best-effort delivery and reports whether it did.
	Dispatch(ctx context.Context, framework model.Framework, findings []model.Finding) bool
	// Send delivers synchronously, at most once.
	Send(ctx context.Context, framework model.Framework, alerts []string) error
}

// AlertBatch is the event payload published for each dispatch
type AlertBatch struct {
	Framework model.Framework
	Alerts    []string
}

type webhookPayload struct {
	Text string `json:"text"`
}

type WebhookDispatcher struct {
	url     string
	timeout time.Duration
	client  *http.Client
	bus     *util.EventBus
}

// NewWebhookDispatcher subscribes the sender to bus. An empty url disables
// Dispatch and makes Send return ErrNotifierNotConfigured.
func NewWebhookDispatcher(url string, timeout time.Duration, bus *util.EventBus) *WebhookDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	d := &WebhookDispatcher{
		url:     strings.TrimSpace(url),
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		bus:     bus,
	}
	bus.Subscribe(EventAlertsRaised, d.handleAlertsRaised)
	return d
}

// Configured reports whether a webhook URL is set
func (d *WebhookDispatcher) Configured() bool {
	return d.url != ""
}

func (d *WebhookDispatcher) Dispatch(ctx context.Context, framework model.Framework, findings []model.Finding) bool {
	if !d.Configured() || len(findings) == 0 || model.IsSentinel(findings) {
		return false
	}
	alerts := make([]string, 0, len(findings))
	for _, f := range findings {
		alerts = append(alerts, f.Text)
	}
	// detach from the request so the response does not cancel delivery
	return d.bus.Publish(context.WithoutCancel(ctx), EventAlertsRaised, AlertBatch{
		Framework: framework,
		Alerts:    alerts,
	}) > 0
}

func (d *WebhookDispatcher) handleAlertsRaised(ctx context.Context, event util.Event) error {
	batch, ok := event.Payload.(AlertBatch)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.Send(ctx, batch.Framework, batch.Alerts); err != nil {
		logger.Warn("Alert notification not delivered",
			zap.String("framework", batch.Framework.String()),
			zap.Int("alerts", len(batch.Alerts)),
			zap.Error(err))
		return nil
	}
	logger.Info("Alert notification delivered",
		zap.String("framework", batch.Framework.String()),
		zap.Int("alerts", len(batch.Alerts)))
	return nil
}

func (d *WebhookDispatcher) Send(ctx context.Context, framework model.Framework, alerts []string) error {
	if len(alerts) == 0 {
		return soxlite_errors.ErrNoAlerts
	}
	if !d.Configured() {
		return soxlite_errors.ErrNotifierNotConfigured
	}

	body, err := json.Marshal(webhookPayload{Text: FormatMessage(framework, alerts)})
	if err != nil {
		return fmt.Errorf("%w: %v", soxlite_errors.ErrNotificationFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", soxlite_errors.ErrNotificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", soxlite_errors.ErrNotificationFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: webhook returned status %d", soxlite_errors.ErrNotificationFailed, resp.StatusCode)
	}
	return nil
}

// FormatMessage renders the header line followed by one bullet per alert
func FormatMessage(framework model.Framework, alerts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Real-Time %s Compliance Alerts:*", framework.DisplayName())
	for _, a := range alerts {
		b.WriteString("\n• ")
		b.WriteString(a)
	}
	return b.String()
}
