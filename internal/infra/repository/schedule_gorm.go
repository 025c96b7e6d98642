package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Barber / Client
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ScheduleGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ScheduleGormRepository) GetProfileByBarberID(
	ctx context.Context,
	barberID uint,
) (*models.BarberProfile, error) {

	var profile models.BarberProfile
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateSchedule(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *ScheduleGormRepository) HasConflict(
	ctx context.Context,
	barberID uint,
	at time.Time,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("barber_id = ? AND appointment_time = ?", barberID, at.UTC())

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ScheduleGormRepository) GetSchedule(
	ctx context.Context,
	id uint,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Client").
		First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) ListSchedules(
	ctx context.Context,
) ([]models.Schedule, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *ScheduleGormRepository) ListSchedulesForBarber(
	ctx context.Context,
	barberID uint,
) ([]models.Schedule, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("barber_id = ?", barberID))
}

func (r *ScheduleGormRepository) ListSchedulesForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Schedule, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("client_id = ?", clientID))
}

func (r *ScheduleGormRepository) list(
	ctx context.Context,
	q *gorm.DB,
) ([]models.Schedule, error) {

	var schedules []models.Schedule
	if err := q.
		Preload("Barber").
		Preload("Client").
		Order("appointment_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleGormRepository) SaveSchedule(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *ScheduleGormRepository) DeleteSchedule(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

func (r *ScheduleGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
