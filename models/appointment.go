package models

import (
	"bytes"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// AppointmentStatusPending is the status every new appointment starts in.
const AppointmentStatusPending = "pending"

// ErrServicesNotList is returned when "services" is present but not a JSON array.
var ErrServicesNotList = errors.New("services must be a list")

// Appointment is a booked visit of a user to a company.
type Appointment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AppointmentView is an appointment together with the services linked to it.
type AppointmentView struct {
	Appointment
	Services []string `json:"services"`
}

// ServiceList is the list of service identifiers of a booking request.
// Non-string elements are kept as raw JSON text so they count as present but never match a UUID.
type ServiceList []string

func (l *ServiceList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return ErrServicesNotList
	}
	out := make(ServiceList, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			out = append(out, string(item))
			continue
		}
		out = append(out, s)
	}
	*l = out
	return nil
}

// BookingRequest is the input of a booking submission.
type BookingRequest struct {
	UserID    string      `json:"user_id" validate:"required"`
	CompanyID string      `json:"company_id" validate:"required"`
	Services  ServiceList `json:"services" validate:"required,min=1"`
	Date      string      `json:"date" validate:"required"`
	Time      string      `json:"time" validate:"required"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
}

// AppointmentFromRow maps a stored appointments row.
func AppointmentFromRow(row map[string]interface{}) Appointment {
	return Appointment{
		ID:        stringValue(row["id"]),
		UserID:    stringValue(row["user_id"]),
		CompanyID: stringValue(row["company_id"]),
		Date:      stringValue(row["date"]),
		Time:      stringValue(row["time"]),
		Name:      stringValue(row["name"]),
		Phone:     stringValue(row["phone"]),
		Email:     stringValue(row["email"]),
		Status:    stringValue(row["status"]),
		CreatedAt: timeValue(row["created_at"]),
	}
}
