package schedule

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/audit"
	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/httperr"
)

type TransferSchedulesInput struct {
	FromBarberID uint
	ToBarberID   uint
}

type TransferResult struct {
	Message    string        `json:"message"`
	Moved      int           `json:"moved"`
	FromBarber BarberSummary `json:"from_barber"`
	ToBarber   BarberSummary `json:"to_barber"`
	Schedules  []domain.View `json:"schedules"`
}

type BarberSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TransferSchedules struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransferSchedules(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransferSchedules {
	return &TransferSchedules{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves every schedule of the source barber onto the destination
// calendar. The whole operation is one transaction: a single destination
// conflict aborts it and nothing moves.
func (uc *TransferSchedules) Execute(
	ctx context.Context,
	actor Actor,
	in TransferSchedulesInput,
) (*TransferResult, error) {

	// Only a barber involved on either end may trigger a transfer.
	if actor.ID != in.FromBarberID && actor.ID != in.ToBarberID {
		return nil, httperr.ForbiddenErr(
			"not_involved_barber",
			"Apenas os barbeiros envolvidos podem transferir agendamentos.",
		)
	}

	if in.FromBarberID == in.ToBarberID {
		return nil, httperr.Validation(
			"same_barber",
			"Os barbeiros de origem e destino devem ser diferentes.",
		)
	}

	from, err := uc.repo.GetBarber(ctx, in.FromBarberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFoundErr("barber_not_found", "Barbeiro de origem não encontrado.")
	}
	if err != nil {
		return nil, err
	}

	to, err := uc.repo.GetBarber(ctx, in.ToBarberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFoundErr("barber_not_found", "Barbeiro de destino não encontrado.")
	}
	if err != nil {
		return nil, err
	}

	schedules, err := uc.repo.ListSchedulesForBarber(ctx, in.FromBarberID)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, httperr.NotFoundErr(
			"no_schedules_found",
			"Nenhum agendamento encontrado para o barbeiro de origem.",
		)
	}

	err = uc.repo.Transaction(ctx, func(r domain.Repository) error {
		for i := range schedules {
			s := &schedules[i]

			conflict, err := r.HasConflict(ctx, in.ToBarberID, s.AppointmentTime, s.ID)
			if err != nil {
				return err
			}
			if conflict {
				return errSlotTaken
			}

			s.BarberID = in.ToBarberID
			if err := r.SaveSchedule(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, errSlotTaken
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:    "schedules_transferred",
		Entity:    "barber",
		EntityID:  &in.ToBarberID,
		ActorID:   &actor.ID,
		ActorRole: actor.Role,
		Metadata: map[string]any{
			"from_barber_id": in.FromBarberID,
			"moved":          len(schedules),
		},
	})

	loc := barberLocation(ctx, uc.repo, in.ToBarberID)
	views := make([]domain.View, 0, len(schedules))
	for i := range schedules {
		schedules[i].Barber = *to
		views = append(views, domain.NewView(&schedules[i], loc))
	}

	return &TransferResult{
		Message:    fmt.Sprintf("%d schedules transferred successfully", len(schedules)),
		Moved:      len(schedules),
		FromBarber: BarberSummary{ID: from.ID, Name: from.Name},
		ToBarber:   BarberSummary{ID: to.ID, Name: to.Name},
		Schedules:  views,
	}, nil
}
