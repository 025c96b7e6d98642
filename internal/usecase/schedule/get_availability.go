package schedule

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/httperr"
)

type AvailabilityInput struct {
	BarberID uint
	Date     string // YYYY-MM-DD, interpreted in the barber's timezone
}

type Slot struct {
	Time      time.Time `json:"time"`
	Formatted string    `json:"formatted"`
}

type AvailabilityResult struct {
	BarberID       uint   `json:"barber_id"`
	Date           string `json:"date"`
	DayOfWeek      string `json:"day_of_week"`
	WorkingHours   string `json:"working_hours,omitempty"`
	Message        string `json:"message,omitempty"`
	AvailableSlots []Slot `json:"available_slots"`
}

type GetAvailability struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewGetAvailability(repo domain.Repository, log *zap.Logger) *GetAvailability {
	return &GetAvailability{repo: repo, log: log}
}

// Execute derives hourly candidate slots across the barber's working window
// for the requested date, keeping only future, conflict-free instants.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("barber_not_found", "Barbeiro não encontrado.")
		}
		return nil, err
	}

	doc, loc, err := barberContext(ctx, uc.repo, in.BarberID)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Data inválida. Use YYYY-MM-DD.")
	}

	result := &AvailabilityResult{
		BarberID:       in.BarberID,
		Date:           day.Format("2006-01-02"),
		DayOfWeek:      domain.DayKey(day.Weekday()),
		AvailableSlots: []Slot{},
	}

	if doc == "" {
		result.Message = "Barbeiro não possui horários de trabalho definidos."
		return result, nil
	}

	hours, err := domain.ParseWorkingHours(doc)
	if err != nil {
		// Bookings fail open on a bad document, but there is no window to
		// enumerate slots from.
		uc.log.Warn("unparseable working hours, no slots derivable",
			zap.Uint("barber_id", in.BarberID),
			zap.Error(err),
		)
		result.Message = "Horários de trabalho inválidos."
		return result, nil
	}

	startMin, endMin, open := hours.Window(day.Weekday())
	if !open {
		result.Message = "Barbeiro não trabalha neste dia."
		return result, nil
	}
	result.WorkingHours = hours[domain.DayKey(day.Weekday())]

	now := time.Now()
	for minute := startMin; minute < endMin; minute += 60 {
		local := time.Date(
			day.Year(), day.Month(), day.Day(),
			minute/60, minute%60, 0, 0,
			loc,
		)
		if !local.After(now) {
			continue
		}

		instant := local.UTC()
		conflict, err := uc.repo.HasConflict(ctx, in.BarberID, instant, 0)
		if err != nil {
			return nil, err
		}
		if conflict {
			continue
		}

		result.AvailableSlots = append(result.AvailableSlots, Slot{
			Time:      instant,
			Formatted: local.Format("15:04"),
		})
	}

	return result, nil
}
