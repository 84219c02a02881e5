package domain

import "errors"

// Sentinel errors for the butler domain. Use errors.Is() to check these.
var (
	// ErrNotificationNotFound indicates the notification does not exist in the household inbox.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidKind indicates a notification kind outside the known set.
	ErrInvalidKind = errors.New("invalid notification kind")

	// ErrInvalidOrder indicates an order with an unknown type or no household.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrSchedulerClosed indicates an order was placed after the scheduler stopped.
	ErrSchedulerClosed = errors.New("scheduler closed")
)
