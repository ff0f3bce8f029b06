package domain

import "time"

// BookingStatus is the lifecycle state of a booking. Chat access is gated
// on BookingStatusAccepted only.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusRejected   BookingStatus = "rejected"
	BookingStatusPaused     BookingStatus = "paused"
)

// PaymentStatus is the payment state of a booking.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment modes accepted at booking time.
var ValidPaymentModes = map[string]bool{
	"credit card":   true,
	"cash":          true,
	"paypal":        true,
	"bank transfer": true,
}

// Location is the service address for a booking.
type Location struct {
	Address  string `json:"address"`
	Landmark string `json:"landmark"`
	Pincode  string `json:"pincode"`
}

// PauseDetails records rescheduling info when a booking is paused.
type PauseDetails struct {
	NextScheduledDate *time.Time `json:"nextScheduledDate,omitempty"`
	NextScheduledTime string     `json:"nextScheduledTime,omitempty"`
	PauseReason       string     `json:"pauseReason,omitempty"`
	PausedAt          *time.Time `json:"pausedAt,omitempty"`
}

// Booking is a scheduled service engagement between a user and a partner.
type Booking struct {
	ID                 string        `json:"id"`
	UserID             string        `json:"userId"`
	SubServiceID       string        `json:"subServiceId"`
	ServiceID          string        `json:"serviceId,omitempty"`
	CategoryID         string        `json:"categoryId,omitempty"`
	PartnerID          string        `json:"partnerId,omitempty"`
	ScheduledDate      time.Time     `json:"scheduledDate"`
	ScheduledTime      string        `json:"scheduledTime"`
	Location           Location      `json:"location"`
	Amount             float64       `json:"amount"`
	PaymentMode        string        `json:"paymentMode"`
	Status             BookingStatus `json:"status"`
	PaymentStatus      PaymentStatus `json:"paymentStatus"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CancellationTime   *time.Time    `json:"cancellationTime,omitempty"`
	Pause              *PauseDetails `json:"pauseDetails,omitempty"`
	AcceptedAt         *time.Time    `json:"acceptedAt,omitempty"`
	CompletedAt        *time.Time    `json:"completedAt,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	SubServiceID  string   `json:"subServiceId" binding:"required"`
	ScheduledDate string   `json:"scheduledDate" binding:"required"` // RFC 3339 date
	ScheduledTime string   `json:"scheduledTime" binding:"required"`
	Location      Location `json:"location" binding:"required"`
	PaymentMode   string   `json:"paymentMode" binding:"required"`
}

// CancelBookingRequest is the payload for cancelling a booking.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
