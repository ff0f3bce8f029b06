package domain

import (
	"time"

	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID            string `gorm:"type:varchar(36);primaryKey"`
	UserID        string `gorm:"type:varchar(36);index:idx_bookings_user_status;not null"`
	SubServiceID  string `gorm:"type:varchar(36);index;not null"`
	ServiceID     string `gorm:"type:varchar(36)"`
	CategoryID    string `gorm:"type:varchar(36)"`
	PartnerID     string `gorm:"type:varchar(36);index"`
	ScheduledDate time.Time `gorm:"index;not null"`
	ScheduledTime string    `gorm:"type:varchar(20);not null"`

	LocationAddress  string `gorm:"type:varchar(300);not null"`
	LocationLandmark string `gorm:"type:varchar(200)"`
	LocationPincode  string `gorm:"type:varchar(12)"`

	Amount        float64 `gorm:"not null"`
	PaymentMode   string  `gorm:"type:varchar(20);not null"`
	Status        string  `gorm:"type:varchar(20);index:idx_bookings_user_status;index;not null;default:'pending'"`
	PaymentStatus string  `gorm:"type:varchar(20);not null;default:'pending'"`

	CancellationReason string `gorm:"type:text"`
	CancellationTime   *time.Time

	PauseNextDate   *time.Time
	PauseNextTime   string `gorm:"type:varchar(20)"`
	PauseReason     string `gorm:"type:text"`
	PausedAt        *time.Time

	AcceptedAt  *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for BookingModel.
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts BookingModel to a domain Booking.
func (m *BookingModel) ToDomain() *Booking {
	b := &Booking{
		ID:            m.ID,
		UserID:        m.UserID,
		SubServiceID:  m.SubServiceID,
		ServiceID:     m.ServiceID,
		CategoryID:    m.CategoryID,
		PartnerID:     m.PartnerID,
		ScheduledDate: m.ScheduledDate,
		ScheduledTime: m.ScheduledTime,
		Location: Location{
			Address:  m.LocationAddress,
			Landmark: m.LocationLandmark,
			Pincode:  m.LocationPincode,
		},
		Amount:             m.Amount,
		PaymentMode:        m.PaymentMode,
		Status:             BookingStatus(m.Status),
		PaymentStatus:      PaymentStatus(m.PaymentStatus),
		CancellationReason: m.CancellationReason,
		CancellationTime:   m.CancellationTime,
		AcceptedAt:         m.AcceptedAt,
		CompletedAt:        m.CompletedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if m.PausedAt != nil || m.PauseReason != "" {
		b.Pause = &PauseDetails{
			NextScheduledDate: m.PauseNextDate,
			NextScheduledTime: m.PauseNextTime,
			PauseReason:       m.PauseReason,
			PausedAt:          m.PausedAt,
		}
	}

	return b
}

// BookingToModel converts a domain Booking to BookingModel.
func BookingToModel(b *Booking) *BookingModel {
	m := &BookingModel{
		ID:                 b.ID,
		UserID:             b.UserID,
		SubServiceID:       b.SubServiceID,
		ServiceID:          b.ServiceID,
		CategoryID:         b.CategoryID,
		PartnerID:          b.PartnerID,
		ScheduledDate:      b.ScheduledDate,
		ScheduledTime:      b.ScheduledTime,
		LocationAddress:    b.Location.Address,
		LocationLandmark:   b.Location.Landmark,
		LocationPincode:    b.Location.Pincode,
		Amount:             b.Amount,
		PaymentMode:        b.PaymentMode,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		CancellationReason: b.CancellationReason,
		CancellationTime:   b.CancellationTime,
		AcceptedAt:         b.AcceptedAt,
		CompletedAt:        b.CompletedAt,
		CreatedAt:          b.CreatedAt,
	}

	if b.Pause != nil {
		m.PauseNextDate = b.Pause.NextScheduledDate
		m.PauseNextTime = b.Pause.NextScheduledTime
		m.PauseReason = b.Pause.PauseReason
		m.PausedAt = b.Pause.PausedAt
	}

	return m
}
