package models

import "time"

// Service is a farm-services marketplace listing. The backend exposes no
// services endpoint yet, so these live in the client catalog.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ProviderID  string    `json:"providerId"`
	CreatedAt   time.Time `json:"created_at"`
}

type AddServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}
