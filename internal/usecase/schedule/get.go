package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/models"
)

type GetSchedule struct {
	repo domain.Repository
}

func NewGetSchedule(repo domain.Repository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

func (uc *GetSchedule) Execute(
	ctx context.Context,
	actor Actor,
	id uint,
) (*domain.View, error) {

	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.canTouch(s) {
		return nil, errNotYours
	}

	view := domain.NewView(s, barberLocation(ctx, uc.repo, s.BarberID))
	return &view, nil
}

func (uc *GetSchedule) load(ctx context.Context, id uint) (*models.Schedule, error) {
	s, err := uc.repo.GetSchedule(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFoundErr("schedule_not_found", "Agendamento não encontrado.")
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
