package booking

import (
	"context"
	"fmt"
	"time"

	"agendamento/database/repository"
	"agendamento/models"

	"go.uber.org/zap"
)

// MinSweepGrace is the youngest an appointment can be and still be swept. An in-flight
// Submit writes its links after the appointment, so younger rows may still gain links.
const MinSweepGrace = time.Minute

// SweepOrphans deletes pending appointments older than grace that have no service links.
// Appointments with an unknown creation time are left alone. It returns the number deleted.
func (s *DefaultBookingService) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	if grace < MinSweepGrace {
		return 0, fmt.Errorf("%w: %s (minimum %s)", ErrSweepGraceTooShort, grace, MinSweepGrace)
	}

	rows, err := s.Store.Select(ctx, repository.TableAppointments, repository.Filter{"status": models.AppointmentStatusPending})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pending appointments: %w", err)
	}

	cutoff := s.now().Add(-grace)
	deleted := 0
	for _, row := range rows {
		appt := models.AppointmentFromRow(row)
		if appt.ID == "" || appt.CreatedAt.IsZero() || appt.CreatedAt.After(cutoff) {
			continue
		}

		links, err := s.Store.Select(ctx, repository.TableAppointmentServices, repository.Filter{"appointment_id": appt.ID})
		if err != nil {
			return deleted, fmt.Errorf("failed to fetch service links of %s: %w", appt.ID, err)
		}
		if len(links) > 0 {
			continue
		}

		n, err := s.Store.Delete(ctx, repository.TableAppointments, repository.Filter{"id": appt.ID})
		if err != nil {
			return deleted, fmt.Errorf("failed to delete orphaned appointment %s: %w", appt.ID, err)
		}
		if n > 0 {
			s.logger().Info("Orphaned appointment deleted",
				zap.String("appointment_id", appt.ID),
				zap.Time("created_at", appt.CreatedAt),
			)
			deleted += n
			OrphansSwept.Add(float64(n))
		}
	}
	return deleted, nil
}
