package domain

import (
	"time"

	"gorm.io/gorm"
)

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review is a user's rating of a completed booking.
type Review struct {
	ID        string       `json:"id"`
	BookingID string       `json:"bookingId"`
	UserID    string       `json:"userId"`
	PartnerID string       `json:"partnerId"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type CreateReviewRequest struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required,min=5,max=500"`
}

type ModerateReviewRequest struct {
	Approve bool `json:"approve"`
}

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	BookingID string `gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID    string `gorm:"type:varchar(36);index;not null"`
	PartnerID string `gorm:"type:varchar(36);index;not null"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:varchar(500);not null"`
	Status    string `gorm:"type:varchar(20);index;not null;default:'pending'"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (m *ReviewModel) ToDomain() *Review {
	return &Review{
		ID:        m.ID,
		BookingID: m.BookingID,
		UserID:    m.UserID,
		PartnerID: m.PartnerID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		Status:    ReviewStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ReviewToModel(r *Review) *ReviewModel {
	return &ReviewModel{
		ID:        r.ID,
		BookingID: r.BookingID,
		UserID:    r.UserID,
		PartnerID: r.PartnerID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
