package schedule

import (
	"time"

	"github.com/barberdesk/barbershop-api/internal/httperr"
)

// CancellationWindow is the minimum time that must remain before an
// appointment for it to be cancelled.
const CancellationWindow = 2 * time.Hour

// ParseInstant parses a wire timestamp (RFC3339, offset honored) into the
// canonical stored form: UTC, truncated to the minute. Slot equality is
// defined on this value.
func ParseInstant(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, httperr.Validation(
			"invalid_appointment_time",
			"Horário inválido. Use o formato RFC3339, ex: 2025-10-18T14:00:00-03:00.",
		)
	}
	return t.UTC().Truncate(time.Minute), nil
}

// ValidateFuture rejects instants that are not strictly after now.
func ValidateFuture(instant, now time.Time) error {
	if !instant.After(now) {
		return httperr.Validation(
			"appointment_in_past",
			"O horário do agendamento deve estar no futuro.",
		)
	}
	return nil
}

// ValidateCancellable rejects cancellations inside the cancellation window.
func ValidateCancellable(appointment, now time.Time) error {
	if appointment.Sub(now) < CancellationWindow {
		return httperr.ConflictErr(
			"too_close_to_cancel",
			"Agendamentos só podem ser cancelados com 2 horas de antecedência.",
		)
	}
	return nil
}
