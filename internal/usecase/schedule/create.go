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
	"github.com/barberdesk/barbershop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateScheduleInput struct {
	BarberID        uint
	ClientID        uint
	AppointmentTime string
}

// ======================================================
// USE CASE
// ======================================================

type CreateSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateSchedule {
	return &CreateSchedule{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSchedule) Execute(
	ctx context.Context,
	actor Actor,
	in CreateScheduleInput,
) (*domain.View, error) {

	// A client books for themselves; barbers may book any client in.
	if actor.IsClient() && in.ClientID != actor.ID {
		return nil, httperr.ForbiddenErr(
			"not_own_booking",
			"Clientes só podem agendar para si mesmos.",
		)
	}

	instant, err := domain.ParseInstant(in.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateFuture(instant, time.Now().UTC()); err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFoundErr("barber_not_found", "Barbeiro não encontrado.")
	}
	if err != nil {
		return nil, err
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFoundErr("client_not_found", "Cliente não encontrado.")
	}
	if err != nil {
		return nil, err
	}

	doc, loc, err := barberContext(ctx, uc.repo, in.BarberID)
	if err != nil {
		return nil, err
	}

	working, parseErr := domain.BarberIsWorking(doc, instant.In(loc))
	if parseErr != nil {
		uc.log.Warn("unparseable working hours, permitting booking",
			zap.Uint("barber_id", in.BarberID),
			zap.Error(parseErr),
		)
	}
	if !working {
		return nil, httperr.Validation(
			"outside_working_hours",
			"Barbeiro não está trabalhando neste horário.",
		)
	}

	s := &models.Schedule{
		AppointmentTime: instant,
		BarberID:        in.BarberID,
		ClientID:        in.ClientID,
	}

	err = uc.repo.Transaction(ctx, func(r domain.Repository) error {
		conflict, err := r.HasConflict(ctx, in.BarberID, instant, 0)
		if err != nil {
			return err
		}
		if conflict {
			return errSlotTaken
		}
		return r.CreateSchedule(ctx, s)
	})
	if err != nil {
		// The unique index catches the race two requests can win past the
		// pre-check; surface it as the same conflict.
		if httperr.IsUniqueViolation(err) {
			return nil, errSlotTaken
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:    "schedule_created",
		Entity:    "schedule",
		EntityID:  &s.ID,
		ActorID:   &actor.ID,
		ActorRole: actor.Role,
	})

	s.Barber = *barber
	s.Client = *client
	view := domain.NewView(s, loc)
	return &view, nil
}

var errSlotTaken = httperr.ConflictErr(
	"time_conflict",
	"Barbeiro já possui agendamento neste horário.",
)
