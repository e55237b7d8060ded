package booking

import (
	"context"
	"time"

	"agendamento/database/repository"
	"agendamento/models"
	"agendamento/utils"

	"go.uber.org/zap"
)

// BookingService submits bookings and lists a user's appointments.
type BookingService interface {
	Submit(ctx context.Context, req models.BookingRequest) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.AppointmentView, error)
	SweepOrphans(ctx context.Context, grace time.Duration) (int, error)
}

// DefaultBookingService implements BookingService on top of a RecordStore.
// It holds no per-request state and is safe for concurrent use.
type DefaultBookingService struct {
	Store repository.RecordStore
	// Compensate deletes the appointment when its service links cannot be written.
	Compensate bool
	Logger     *zap.Logger
	Now        func() time.Time
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
