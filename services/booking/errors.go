package booking

import (
	"errors"
	"fmt"
)

// Stages of a submission that write to the store.
const (
	StageAppointment  = "appointment"
	StageServiceLinks = "service_links"
)

var (
	ErrNoValidServices    = errors.New("no valid service identifiers")
	ErrSweepGraceTooShort = errors.New("orphan sweep grace period is too short")
	errMissingID          = errors.New("store returned no appointment id")
)

// PersistenceError reports a rejected write and the stage it happened in.
// AppointmentID is set when an appointment was committed before the failure.
type PersistenceError struct {
	Stage         string
	AppointmentID string
	Err           error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Stage, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// OrphanedAppointment returns the id of an appointment left without service links, if any.
func OrphanedAppointment(err error) string {
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return perr.AppointmentID
	}
	var oerr *orphanError
	if errors.As(err, &oerr) {
		return oerr.appointmentID
	}
	return ""
}

// orphanError decorates a validation failure raised after the appointment was written.
type orphanError struct {
	appointmentID string
	err           error
}

func (e *orphanError) Error() string { return e.err.Error() }
func (e *orphanError) Unwrap() error { return e.err }
