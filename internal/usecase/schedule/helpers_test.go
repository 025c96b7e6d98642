package schedule

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/audit"
	dbpkg "github.com/barberdesk/barbershop-api/internal/db"
	domain "github.com/barberdesk/barbershop-api/internal/domain/schedule"
	"github.com/barberdesk/barbershop-api/internal/models"
)

// fakeRepo is an in-memory domain.Repository. Transaction snapshots the
// schedule table and restores it on error, mirroring a rollback; txMu
// serializes transactions the way the database would, so concurrent bookings
// race realistically against the in-transaction conflict check.
type fakeRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	barbers   map[uint]*models.Barber
	clients   map[uint]*models.Client
	profiles  map[uint]*models.BarberProfile // keyed by barber ID
	schedules map[uint]*models.Schedule
	nextID    uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:   map[uint]*models.Barber{},
		clients:   map[uint]*models.Client{},
		profiles:  map[uint]*models.BarberProfile{},
		schedules: map[uint]*models.Schedule{},
	}
}

func (f *fakeRepo) addBarber(id uint, name string) {
	f.barbers[id] = &models.Barber{ID: id, Name: name}
}

func (f *fakeRepo) addClient(id uint, name string) {
	f.clients[id] = &models.Client{ID: id, Name: name}
}

func (f *fakeRepo) addProfile(barberID uint, tz, workingHours string) {
	f.profiles[barberID] = &models.BarberProfile{
		ID:           barberID,
		BarberID:     barberID,
		Timezone:     tz,
		WorkingHours: workingHours,
	}
}

func (f *fakeRepo) addSchedule(barberID, clientID uint, at time.Time) *models.Schedule {
	f.nextID++
	s := &models.Schedule{
		ID:              f.nextID,
		AppointmentTime: at.UTC(),
		BarberID:        barberID,
		ClientID:        clientID,
	}
	f.schedules[s.ID] = s
	return s
}

func (f *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) GetProfileByBarberID(_ context.Context, barberID uint) (*models.BarberProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[barberID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) CreateSchedule(_ context.Context, s *models.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.schedules[s.ID] = &cp
	return nil
}

func (f *fakeRepo) HasConflict(_ context.Context, barberID uint, at time.Time, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.schedules {
		if s.ID == excludeID {
			continue
		}
		if s.BarberID == barberID && s.AppointmentTime.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetSchedule(_ context.Context, id uint) (*models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	if b, ok := f.barbers[s.BarberID]; ok {
		cp.Barber = *b
	}
	if c, ok := f.clients[s.ClientID]; ok {
		cp.Client = *c
	}
	return &cp, nil
}

func (f *fakeRepo) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	return f.list(func(*models.Schedule) bool { return true }), nil
}

func (f *fakeRepo) ListSchedulesForBarber(_ context.Context, barberID uint) ([]models.Schedule, error) {
	return f.list(func(s *models.Schedule) bool { return s.BarberID == barberID }), nil
}

func (f *fakeRepo) ListSchedulesForClient(_ context.Context, clientID uint) ([]models.Schedule, error) {
	return f.list(func(s *models.Schedule) bool { return s.ClientID == clientID }), nil
}

func (f *fakeRepo) list(keep func(*models.Schedule) bool) []models.Schedule {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Schedule
	for _, s := range f.schedules {
		if !keep(s) {
			continue
		}
		cp := *s
		if b, ok := f.barbers[s.BarberID]; ok {
			cp.Barber = *b
		}
		if c, ok := f.clients[s.ClientID]; ok {
			cp.Client = *c
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentTime.Before(out[j].AppointmentTime)
	})
	return out
}

func (f *fakeRepo) SaveSchedule(_ context.Context, s *models.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.schedules[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *s
	cp.Barber = models.Barber{}
	cp.Client = models.Client{}
	f.schedules[s.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteSchedule(_ context.Context, s *models.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.schedules, s.ID)
	return nil
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(domain.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	snapshot := make(map[uint]*models.Schedule, len(f.schedules))
	for id, s := range f.schedules {
		cp := *s
		snapshot[id] = &cp
	}
	snapshotNextID := f.nextID
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.schedules = snapshot
		f.nextID = snapshotNextID
		f.mu.Unlock()
		return err
	}
	return nil
}

// testDispatcher backs the audit dispatcher with an in-memory sqlite store so
// dispatched events have somewhere real to land.
func testDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return audit.NewDispatcher(audit.New(db), zap.NewNop())
}

const utcBusinessWeek = `{
	"segunda": "09:00-17:00",
	"terca":   "09:00-17:00",
	"quarta":  "09:00-17:00",
	"quinta":  "09:00-17:00",
	"sexta":   "09:00-17:00",
	"sabado":  "fechado",
	"domingo": "fechado"
}`

// 2027-03-01 is a Monday, comfortably in the future.
func futureMonday(hour, min int) time.Time {
	return time.Date(2027, 3, 1, hour, min, 0, 0, time.UTC)
}
