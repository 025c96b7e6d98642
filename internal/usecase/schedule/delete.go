package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/audit"
	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/httperr"
)

type DeleteSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteSchedule {
	return &DeleteSchedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteSchedule) Execute(
	ctx context.Context,
	actor Actor,
	id uint,
) error {

	s, err := uc.repo.GetSchedule(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundErr("schedule_not_found", "Agendamento não encontrado.")
	}
	if err != nil {
		return err
	}

	if !actor.canTouch(s) {
		return errNotYours
	}

	if err := domain.ValidateCancellable(s.AppointmentTime, time.Now().UTC()); err != nil {
		return err
	}

	if err := uc.repo.DeleteSchedule(ctx, s); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:    "schedule_deleted",
		Entity:    "schedule",
		EntityID:  &s.ID,
		ActorID:   &actor.ID,
		ActorRole: actor.Role,
	})

	return nil
}
