package events

import (
	"context"
	"time"
)

// BookingEvent is published on booking lifecycle transitions.
type BookingEvent struct {
	EventType string    `json:"eventType"`
	BookingID string    `json:"bookingId"`
	UserID    string    `json:"userId"`
	PartnerID string    `json:"partnerId,omitempty"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types for booking lifecycle transitions.
const (
	EventBookingCreated   = "booking.created"
	EventBookingAccepted  = "booking.accepted"
	EventBookingRejected  = "booking.rejected"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
)

// Producer publishes booking events to the message bus.
type Producer interface {
	ProduceBookingEvent(ctx context.Context, event *BookingEvent) error
	Close() error
}
