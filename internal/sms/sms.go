package sms

import "context"

// Sender delivers SMS messages to phone numbers.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}
