package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/barberdesk/barbershop-api/internal/db"
	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/models"
)

func testRepo(t *testing.T) *ScheduleGormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection, or each pool member would see its own in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	require.NoError(t, db.Create(&models.Barber{
		Name: "Carlos", Email: "carlos@barber.test", PasswordHash: "x",
	}).Error)
	require.NoError(t, db.Create(&models.Barber{
		Name: "Diego", Email: "diego@barber.test", PasswordHash: "x",
	}).Error)
	require.NoError(t, db.Create(&models.Client{
		Name: "Ana", Email: "ana@client.test", PasswordHash: "x",
	}).Error)

	return NewScheduleGormRepository(db)
}

func slotAt(hour int) time.Time {
	return time.Date(2027, 3, 1, hour, 0, 0, 0, time.UTC)
}

func TestGetBarberAndClient(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	barber, err := repo.GetBarber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Carlos", barber.Name)

	_, err = repo.GetBarber(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	client, err := repo.GetClient(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", client.Name)
}

func TestGetProfileByBarberID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	_, err := repo.GetProfileByBarberID(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.db.Create(&models.BarberProfile{
		BarberID:     1,
		Timezone:     "UTC",
		WorkingHours: `{"segunda":"09:00-17:00"}`,
	}).Error)

	profile, err := repo.GetProfileByBarberID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "UTC", profile.Timezone)
}

func TestHasConflict(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	s := &models.Schedule{AppointmentTime: slotAt(10), BarberID: 1, ClientID: 1}
	require.NoError(t, repo.CreateSchedule(ctx, s))

	conflict, err := repo.HasConflict(ctx, 1, slotAt(10), 0)
	require.NoError(t, err)
	assert.True(t, conflict, "exact slot is taken")

	conflict, err = repo.HasConflict(ctx, 1, slotAt(11), 0)
	require.NoError(t, err)
	assert.False(t, conflict, "adjacent slot is free")

	conflict, err = repo.HasConflict(ctx, 2, slotAt(10), 0)
	require.NoError(t, err)
	assert.False(t, conflict, "other barber is free at the same instant")

	conflict, err = repo.HasConflict(ctx, 1, slotAt(10), s.ID)
	require.NoError(t, err)
	assert.False(t, conflict, "excluded row does not conflict with itself")
}

func TestUniqueSlotIndex(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateSchedule(ctx, &models.Schedule{
		AppointmentTime: slotAt(10), BarberID: 1, ClientID: 1,
	}))

	err := repo.CreateSchedule(ctx, &models.Schedule{
		AppointmentTime: slotAt(10), BarberID: 1, ClientID: 1,
	})
	assert.Error(t, err, "duplicate barber+instant violates the unique index")

	assert.NoError(t, repo.CreateSchedule(ctx, &models.Schedule{
		AppointmentTime: slotAt(10), BarberID: 2, ClientID: 1,
	}))
}

func TestScheduleCRUD(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	s := &models.Schedule{AppointmentTime: slotAt(10), BarberID: 1, ClientID: 1}
	require.NoError(t, repo.CreateSchedule(ctx, s))
	require.NotZero(t, s.ID)

	loaded, err := repo.GetSchedule(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos", loaded.Barber.Name, "associations preloaded")
	assert.Equal(t, "Ana", loaded.Client.Name)
	assert.True(t, loaded.AppointmentTime.Equal(slotAt(10)))

	loaded.BarberID = 2
	require.NoError(t, repo.SaveSchedule(ctx, loaded))

	moved, err := repo.GetSchedule(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), moved.BarberID)
	assert.Equal(t, "Diego", moved.Barber.Name)

	require.NoError(t, repo.DeleteSchedule(ctx, moved))
	_, err = repo.GetSchedule(ctx, s.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListSchedules(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	// Inserted out of order on purpose.
	for _, hour := range []int{12, 10, 11} {
		require.NoError(t, repo.CreateSchedule(ctx, &models.Schedule{
			AppointmentTime: slotAt(hour), BarberID: 1, ClientID: 1,
		}))
	}
	require.NoError(t, repo.CreateSchedule(ctx, &models.Schedule{
		AppointmentTime: slotAt(10), BarberID: 2, ClientID: 1,
	}))

	all, err := repo.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	mine, err := repo.ListSchedulesForBarber(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.True(t, mine[0].AppointmentTime.Equal(slotAt(10)), "ordered ascending")
	assert.True(t, mine[2].AppointmentTime.Equal(slotAt(12)))

	byClient, err := repo.ListSchedulesForClient(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byClient, 4)
}

func TestTransactionRollsBack(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(r domain.Repository) error {
		if err := r.CreateSchedule(ctx, &models.Schedule{
			AppointmentTime: slotAt(10), BarberID: 1, ClientID: 1,
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	conflict, err := repo.HasConflict(ctx, 1, slotAt(10), 0)
	require.NoError(t, err)
	assert.False(t, conflict, "create was rolled back")
}

func TestTransactionCommits(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(r domain.Repository) error {
		return r.CreateSchedule(ctx, &models.Schedule{
			AppointmentTime: slotAt(10), BarberID: 1, ClientID: 1,
		})
	})
	require.NoError(t, err)

	conflict, err := repo.HasConflict(ctx, 1, slotAt(10), 0)
	require.NoError(t, err)
	assert.True(t, conflict)
}
