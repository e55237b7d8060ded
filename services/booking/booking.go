package booking

import (
	"context"
	"strings"
	"time"

	"agendamento/database/repository"
	"agendamento/models"
	"agendamento/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit validates req, writes the appointment, then writes one link per well-formed service id.
// It returns the new appointment id, a *utils.ValidationError or a *PersistenceError.
// The two writes are not atomic: unless Compensate is set, a failure after the first
// write leaves the appointment committed (see OrphanedAppointment).
func (s *DefaultBookingService) Submit(ctx context.Context, req models.BookingRequest) (appointmentID string, err error) {
	started := time.Now()
	defer func() { observe(err, started) }()

	normalizeRequest(&req)
	log := s.logger().With(
		zap.String("user_id", req.UserID),
		zap.String("company_id", req.CompanyID),
	)
	log.Info("Booking request received",
		zap.String("date", req.Date),
		zap.String("time", req.Time),
		zap.Strings("services", req.Services),
	)

	// Stage 1: validate, no writes on failure.
	if err := utils.ValidateStruct(req); err != nil {
		log.Warn("Booking rejected: invalid request", zap.Error(err))
		return "", err
	}

	// Stage 2: appointment.
	rows, err := s.Store.Insert(ctx, repository.TableAppointments, []repository.Row{appointmentRow(req, s.now())})
	if err == nil && (len(rows) == 0 || rows[0].ID() == "") {
		err = errMissingID
	}
	if err != nil {
		log.Error("Booking failed: appointment not persisted", zap.Error(err))
		return "", &PersistenceError{Stage: StageAppointment, Err: err}
	}
	appointmentID = rows[0].ID()
	log = log.With(zap.String("appointment_id", appointmentID))
	log.Info("Appointment created")

	// Stage 3: filter service ids.
	serviceIDs := FilterServiceIDs(req.Services)
	log.Info("Service identifiers filtered",
		zap.Int("received", len(req.Services)),
		zap.Int("valid", len(serviceIDs)),
	)
	if len(serviceIDs) == 0 {
		verr := &utils.ValidationError{
			Fields:  []string{"services"},
			Message: ErrNoValidServices.Error(),
			Err:     ErrNoValidServices,
		}
		log.Warn("Booking rejected: no valid service identifiers")
		if s.compensate(ctx, log, appointmentID) {
			return "", verr
		}
		return "", &orphanError{appointmentID: appointmentID, err: verr}
	}

	// Stage 4: links, one batch.
	links := make([]repository.Row, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		links = append(links, repository.Row{
			"appointment_id": appointmentID,
			"service_id":     id,
		})
	}
	if _, err := s.Store.Insert(ctx, repository.TableAppointmentServices, links); err != nil {
		log.Error("Booking failed: service links not persisted", zap.Error(err))
		perr := &PersistenceError{Stage: StageServiceLinks, AppointmentID: appointmentID, Err: err}
		if s.compensate(ctx, log, appointmentID) {
			perr.AppointmentID = ""
		}
		return "", perr
	}

	log.Info("Booking created", zap.Int("links", len(links)))
	return appointmentID, nil
}

// compensate deletes an appointment left without links. It reports whether the row is gone.
func (s *DefaultBookingService) compensate(ctx context.Context, log *zap.Logger, appointmentID string) bool {
	if !s.Compensate {
		log.Warn("Appointment left without service links")
		return false
	}
	// The request may already be cancelled; the cleanup must still run.
	n, err := s.Store.Delete(context.WithoutCancel(ctx), repository.TableAppointments, repository.Filter{"id": appointmentID})
	if err != nil {
		log.Error("Compensation failed: appointment not deleted", zap.Error(err))
		return false
	}
	log.Info("Compensation: appointment deleted", zap.Int("deleted", n))
	return true
}

// FilterServiceIDs keeps the 36-character UUID-shaped ids, dropping duplicates.
func FilterServiceIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if len(id) != 36 {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		key := strings.ToLower(id)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, id)
	}
	return out
}

func normalizeRequest(req *models.BookingRequest) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.CompanyID = strings.TrimSpace(req.CompanyID)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
}

func appointmentRow(req models.BookingRequest, now time.Time) repository.Row {
	return repository.Row{
		"user_id":    req.UserID,
		"company_id": req.CompanyID,
		"date":       req.Date,
		"time":       req.Time,
		"name":       req.Name,
		"phone":      req.Phone,
		"email":      req.Email,
		"status":     models.AppointmentStatusPending,
		"created_at": now,
	}
}
