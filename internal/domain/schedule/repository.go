package schedule

import (
	"context"
	"time"

	"github.com/barberdesk/barbershop-api/internal/models"
)

type Repository interface {
	// -------- Barber / Client --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetProfileByBarberID(
		ctx context.Context,
		barberID uint,
	) (*models.BarberProfile, error)

	// -------- Schedule (create / conflict) --------
	CreateSchedule(
		ctx context.Context,
		s *models.Schedule,
	) error

	// HasConflict reports whether another schedule occupies the exact same
	// barber+instant slot. excludeID is ignored when zero.
	HasConflict(
		ctx context.Context,
		barberID uint,
		at time.Time,
		excludeID uint,
	) (bool, error)

	// -------- Schedule (read / change) --------
	GetSchedule(
		ctx context.Context,
		id uint,
	) (*models.Schedule, error)

	ListSchedules(
		ctx context.Context,
	) ([]models.Schedule, error)

	ListSchedulesForBarber(
		ctx context.Context,
		barberID uint,
	) ([]models.Schedule, error)

	ListSchedulesForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Schedule, error)

	SaveSchedule(
		ctx context.Context,
		s *models.Schedule,
	) error

	DeleteSchedule(
		ctx context.Context,
		s *models.Schedule,
	) error

	// Transaction runs fn against a transactional view of the repository.
	// Any error rolls every mutation back.
	Transaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
