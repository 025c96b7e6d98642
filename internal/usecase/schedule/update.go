package schedule

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/audit"
	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/httperr"
)

type UpdateScheduleInput struct {
	ID              uint
	BarberID        *uint
	ClientID        *uint
	AppointmentTime *string
}

type UpdateSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewUpdateSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *UpdateSchedule {
	return &UpdateSchedule{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

func (uc *UpdateSchedule) Execute(
	ctx context.Context,
	actor Actor,
	in UpdateScheduleInput,
) (*domain.View, error) {

	s, err := uc.repo.GetSchedule(ctx, in.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFoundErr("schedule_not_found", "Agendamento não encontrado.")
	}
	if err != nil {
		return nil, err
	}

	if !actor.canTouch(s) {
		return nil, errNotYours
	}

	// --------------------------------------------------
	// New time: future check, conflict re-checked below
	// --------------------------------------------------
	timeChanged := false
	if in.AppointmentTime != nil {
		instant, err := domain.ParseInstant(*in.AppointmentTime)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateFuture(instant, time.Now().UTC()); err != nil {
			return nil, err
		}
		if !instant.Equal(s.AppointmentTime) {
			s.AppointmentTime = instant
			timeChanged = true
		}
	}

	// --------------------------------------------------
	// New barber: availability at the effective time
	// --------------------------------------------------
	barberChanged := false
	if in.BarberID != nil && *in.BarberID != s.BarberID {
		barber, err := uc.repo.GetBarber(ctx, *in.BarberID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("barber_not_found", "Barbeiro não encontrado.")
		}
		if err != nil {
			return nil, err
		}

		doc, loc, err := barberContext(ctx, uc.repo, barber.ID)
		if err != nil {
			return nil, err
		}
		working, parseErr := domain.BarberIsWorking(doc, s.AppointmentTime.In(loc))
		if parseErr != nil {
			uc.log.Warn("unparseable working hours, permitting reassignment",
				zap.Uint("barber_id", barber.ID),
				zap.Error(parseErr),
			)
		}
		if !working {
			return nil, httperr.Validation(
				"outside_working_hours",
				"Barbeiro não está trabalhando neste horário.",
			)
		}

		s.BarberID = barber.ID
		s.Barber = *barber
		barberChanged = true
	}

	// --------------------------------------------------
	// New client
	// --------------------------------------------------
	if in.ClientID != nil && *in.ClientID != s.ClientID {
		client, err := uc.repo.GetClient(ctx, *in.ClientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("client_not_found", "Cliente não encontrado.")
		}
		if err != nil {
			return nil, err
		}
		s.ClientID = client.ID
		s.Client = *client
	}

	err = uc.repo.Transaction(ctx, func(r domain.Repository) error {
		if timeChanged || barberChanged {
			conflict, err := r.HasConflict(ctx, s.BarberID, s.AppointmentTime, s.ID)
			if err != nil {
				return err
			}
			if conflict {
				return errSlotTaken
			}
		}
		return r.SaveSchedule(ctx, s)
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, errSlotTaken
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:    "schedule_updated",
		Entity:    "schedule",
		EntityID:  &s.ID,
		ActorID:   &actor.ID,
		ActorRole: actor.Role,
	})

	view := domain.NewView(s, barberLocation(ctx, uc.repo, s.BarberID))
	return &view, nil
}
