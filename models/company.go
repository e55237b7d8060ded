package models

import "time"

// Company is a provider that can be booked.
type Company struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CompanyRequest struct {
	Name     string `json:"name" validate:"required"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address"`
	Category string `json:"category"`
}

// Service is a bookable offering of a company.
type Service struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

type ServiceRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0"`
}

func CompanyFromRow(row map[string]interface{}) Company {
	return Company{
		ID:        stringValue(row["id"]),
		OwnerID:   stringValue(row["owner_id"]),
		Name:      stringValue(row["name"]),
		Document:  stringValue(row["document"]),
		Phone:     stringValue(row["phone"]),
		Email:     stringValue(row["email"]),
		Address:   stringValue(row["address"]),
		Category:  stringValue(row["category"]),
		CreatedAt: timeValue(row["created_at"]),
	}
}

func ServiceFromRow(row map[string]interface{}) Service {
	return Service{
		ID:              stringValue(row["id"]),
		CompanyID:       stringValue(row["company_id"]),
		Name:            stringValue(row["name"]),
		Description:     stringValue(row["description"]),
		Price:           floatValue(row["price"]),
		DurationMinutes: intValue(row["duration_minutes"]),
		CreatedAt:       timeValue(row["created_at"]),
	}
}
