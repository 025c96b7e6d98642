package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	"github.com/barberdesk/barbershop-api/internal/models"
	"github.com/barberdesk/barbershop-api/internal/timezone"
)

// Actor identifies the authenticated caller. Ownership rules live here, next
// to the operations they protect; role-level gating is the policy middleware.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsBarber() bool { return a.Role == middleware.RoleBarber }
func (a Actor) IsClient() bool { return a.Role == middleware.RoleClient }

// canTouch reports whether the actor may read or mutate s: the booked client
// or the owning barber.
func (a Actor) canTouch(s *models.Schedule) bool {
	if a.IsClient() {
		return s.ClientID == a.ID
	}
	if a.IsBarber() {
		return s.BarberID == a.ID
	}
	return false
}

var errNotYours = httperr.ForbiddenErr(
	"not_schedule_owner",
	"Você não pode alterar agendamentos de outra pessoa.",
)

// barberContext resolves the pieces of barber state the booking engine needs:
// the working-hours document (empty when no profile exists, which means open
// by default) and the barber's display/working location.
func barberContext(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
) (doc string, loc *time.Location, err error) {

	profile, err := repo.GetProfileByBarberID(ctx, barberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", timezone.Location(""), nil
	}
	if err != nil {
		return "", nil, err
	}
	return profile.WorkingHours, timezone.Location(profile.Timezone), nil
}

// barberLocation is barberContext for read paths that only format output.
func barberLocation(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
) *time.Location {

	_, loc, err := barberContext(ctx, repo, barberID)
	if err != nil {
		return timezone.Location("")
	}
	return loc
}
