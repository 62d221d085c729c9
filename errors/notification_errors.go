// errors/notification_errors.go
package errors

import "errors"

var (
	ErrNotifierNotConfigured = errors.New("notification webhook not configured")
	ErrNotificationFailed    = errors.New("notification delivery failed")
	ErrNoAlerts              = errors.New("no alerts to send")
)
