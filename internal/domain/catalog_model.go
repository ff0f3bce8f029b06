package domain

import (
	"time"

	"gorm.io/gorm"
)

// ServiceCategoryModel is the GORM model for the service_categories table.
type ServiceCategoryModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	ImageKey    string `gorm:"type:varchar(255)"`
	IsActive    bool   `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ServiceCategoryModel) TableName() string {
	return "service_categories"
}

func (m *ServiceCategoryModel) ToDomain() *ServiceCategory {
	return &ServiceCategory{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ImageKey:    m.ImageKey,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func CategoryToModel(c *ServiceCategory) *ServiceCategoryModel {
	return &ServiceCategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageKey:    c.ImageKey,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// ServiceModel is the GORM model for the services table.
type ServiceModel struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	CategoryID  string `gorm:"type:varchar(36);index;not null"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	ImageKey    string `gorm:"type:varchar(255)"`
	IsActive    bool   `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ServiceModel) TableName() string {
	return "services"
}

func (m *ServiceModel) ToDomain() *Service {
	return &Service{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		ImageKey:    m.ImageKey,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ServiceToModel(s *Service) *ServiceModel {
	return &ServiceModel{
		ID:          s.ID,
		CategoryID:  s.CategoryID,
		Name:        s.Name,
		Description: s.Description,
		ImageKey:    s.ImageKey,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

// SubServiceModel is the GORM model for the sub_services table.
type SubServiceModel struct {
	ID            string  `gorm:"type:varchar(36);primaryKey"`
	ServiceID     string  `gorm:"type:varchar(36);index;not null"`
	Name          string  `gorm:"type:varchar(100);not null"`
	Description   string  `gorm:"type:text"`
	Price         float64 `gorm:"not null"`
	DurationMins  int
	ImageKey      string `gorm:"type:varchar(255)"`
	IsRecommended bool   `gorm:"not null;default:false"`
	IsMostBooked  bool   `gorm:"not null;default:false"`
	IsActive      bool   `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SubServiceModel) TableName() string {
	return "sub_services"
}

func (m *SubServiceModel) ToDomain() *SubService {
	return &SubService{
		ID:            m.ID,
		ServiceID:     m.ServiceID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		DurationMins:  m.DurationMins,
		ImageKey:      m.ImageKey,
		IsRecommended: m.IsRecommended,
		IsMostBooked:  m.IsMostBooked,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func SubServiceToModel(s *SubService) *SubServiceModel {
	return &SubServiceModel{
		ID:            s.ID,
		ServiceID:     s.ServiceID,
		Name:          s.Name,
		Description:   s.Description,
		Price:         s.Price,
		DurationMins:  s.DurationMins,
		ImageKey:      s.ImageKey,
		IsRecommended: s.IsRecommended,
		IsMostBooked:  s.IsMostBooked,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}
