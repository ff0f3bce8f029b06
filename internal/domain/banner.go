package domain

import (
	"time"

	"gorm.io/gorm"
)

// Banner is a promotional image shown on the home screen.
type Banner struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageKey    string    `json:"imageKey"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	DisplayOrder int      `json:"displayOrder"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UpdateBannerRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// BannerModel is the GORM model for the banners table.
type BannerModel struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Title        string `gorm:"type:varchar(150);not null"`
	Description  string `gorm:"type:text"`
	ImageKey     string `gorm:"type:varchar(255);not null"`
	DisplayOrder int    `gorm:"index;not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (BannerModel) TableName() string {
	return "banners"
}

func (m *BannerModel) ToDomain() *Banner {
	return &Banner{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		ImageKey:     m.ImageKey,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func BannerToModel(b *Banner) *BannerModel {
	return &BannerModel{
		ID:           b.ID,
		Title:        b.Title,
		Description:  b.Description,
		ImageKey:     b.ImageKey,
		DisplayOrder: b.DisplayOrder,
		IsActive:     b.IsActive,
		CreatedAt:    b.CreatedAt,
	}
}
