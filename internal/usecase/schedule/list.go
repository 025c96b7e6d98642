package schedule

import (
	"context"
	"time"

	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/models"
)

type ListSchedules struct {
	repo domain.Repository
}

func NewListSchedules(repo domain.Repository) *ListSchedules {
	return &ListSchedules{repo: repo}
}

// Execute lists the actor's own agenda: a barber sees their calendar, a
// client their bookings.
func (uc *ListSchedules) Execute(
	ctx context.Context,
	actor Actor,
) ([]domain.View, error) {

	var (
		schedules []models.Schedule
		err       error
	)

	switch {
	case actor.IsBarber():
		schedules, err = uc.repo.ListSchedulesForBarber(ctx, actor.ID)
	case actor.IsClient():
		schedules, err = uc.repo.ListSchedulesForClient(ctx, actor.ID)
	default:
		return nil, errNotYours
	}
	if err != nil {
		return nil, err
	}

	// Each view is formatted in its barber's timezone; resolve each barber
	// at most once per call.
	locs := map[uint]*time.Location{}
	views := make([]domain.View, 0, len(schedules))
	for i := range schedules {
		s := &schedules[i]
		loc, ok := locs[s.BarberID]
		if !ok {
			loc = barberLocation(ctx, uc.repo, s.BarberID)
			locs[s.BarberID] = loc
		}
		views = append(views, domain.NewView(s, loc))
	}

	return views, nil
}
