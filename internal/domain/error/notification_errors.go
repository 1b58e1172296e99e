package error

import "errors"

// NotificationErrorCode defines error codes for reminder delivery.
// Format: NTF-XXYYYY where XX is category and YYYY is specific error.
type NotificationErrorCode string

const (
	// Outbox errors (01XXXX)
	ErrCodeOutboxUnavailable NotificationErrorCode = "NTF-010001"

	// Delivery errors (02XXXX)
	ErrCodePermanentDeliveryFailure NotificationErrorCode = "NTF-020001"
	ErrCodeTemporaryDeliveryFailure NotificationErrorCode = "NTF-020002"

	// Rendering errors (03XXXX)
	ErrCodeReminderRenderFailed NotificationErrorCode = "NTF-030001"
)

// NotificationError is a notification error carrying a NotificationErrorCode.
type NotificationError = CodedError[NotificationErrorCode]

// NewNotificationError creates a new NotificationError.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return coded(code, message, err)
}

// IsPermanentDeliveryFailure reports whether err must not be retried.
func IsPermanentDeliveryFailure(err error) bool {
	var notificationErr *NotificationError
	return errors.As(err, &notificationErr) && notificationErr.Code == ErrCodePermanentDeliveryFailure
}
