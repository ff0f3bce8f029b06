package domain

import "time"

// ServiceCategory is the top level of the catalog tree.
type ServiceCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageKey    string    `json:"imageKey,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Service belongs to a category.
type Service struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageKey    string    `json:"imageKey,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SubService is the bookable leaf of the catalog tree.
type SubService struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"serviceId"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	DurationMins  int       `json:"durationMins,omitempty"`
	ImageKey      string    `json:"imageKey,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	IsRecommended bool      `json:"isRecommended"`
	IsMostBooked  bool      `json:"isMostBooked"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CategoryTree is a category with its nested services and sub-services,
// served from the public catalog endpoint.
type CategoryTree struct {
	ServiceCategory
	Services []ServiceTree `json:"services"`
}

// ServiceTree is a service with its sub-services.
type ServiceTree struct {
	Service
	SubServices []SubService `json:"subServices"`
}

// Catalog request payloads.

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type CreateServiceRequest struct {
	CategoryID  string `json:"categoryId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type CreateSubServiceRequest struct {
	ServiceID     string  `json:"serviceId" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	DurationMins  int     `json:"durationMins"`
	IsRecommended bool    `json:"isRecommended"`
	IsMostBooked  bool    `json:"isMostBooked"`
}

type UpdateSubServiceRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	DurationMins  *int     `json:"durationMins"`
	IsRecommended *bool    `json:"isRecommended"`
	IsMostBooked  *bool    `json:"isMostBooked"`
	IsActive      *bool    `json:"isActive"`
}
