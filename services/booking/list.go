package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"agendamento/database/repository"
	"agendamento/models"
	"agendamento/utils"

	"go.uber.org/zap"
)

// ListByUser returns the user's appointments ordered by date and time, each with its linked service ids.
func (s *DefaultBookingService) ListByUser(ctx context.Context, userID string) ([]models.AppointmentView, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, &utils.ValidationError{Fields: []string{"user_id"}, Message: "missing required fields: user_id"}
	}

	rows, err := s.Store.Select(ctx, repository.TableAppointments, repository.Filter{"user_id": userID})
	if err != nil {
		s.logger().Error("ListByUser: failed to fetch appointments", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	views := make([]models.AppointmentView, 0, len(rows))
	for _, row := range rows {
		appt := models.AppointmentFromRow(row)
		links, err := s.Store.Select(ctx, repository.TableAppointmentServices, repository.Filter{"appointment_id": appt.ID})
		if err != nil {
			s.logger().Error("ListByUser: failed to fetch service links", zap.String("appointment_id", appt.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to fetch service links: %w", err)
		}
		services := make([]string, 0, len(links))
		for _, l := range links {
			services = append(services, l.String("service_id"))
		}
		sort.Strings(services)
		views = append(views, models.AppointmentView{Appointment: appt, Services: services})
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Date != views[j].Date {
			return views[i].Date < views[j].Date
		}
		return views[i].Time < views[j].Time
	})
	return views, nil
}
