package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberdesk/barbershop-api/internal/httperr"
)

func TestParseInstant(t *testing.T) {
	t.Run("normalizes offsets to UTC", func(t *testing.T) {
		got, err := ParseInstant("2027-03-01T10:00:00-03:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, 3, 1, 13, 0, 0, 0, time.UTC), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("truncates seconds", func(t *testing.T) {
		got, err := ParseInstant("2027-03-01T10:00:45Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2027, 3, 1, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("same slot from different offsets compares equal", func(t *testing.T) {
		a, err := ParseInstant("2027-03-01T10:00:00-03:00")
		require.NoError(t, err)
		b, err := ParseInstant("2027-03-01T13:00:00Z")
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})

	t.Run("rejects non-RFC3339 input", func(t *testing.T) {
		for _, raw := range []string{"", "2027-03-01", "01/03/2027 10:00", "yesterday"} {
			_, err := ParseInstant(raw)
			assert.True(t, httperr.IsCode(err, "invalid_appointment_time"), "input %q", raw)
		}
	})
}

func TestValidateFuture(t *testing.T) {
	now := time.Date(2027, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateFuture(now.Add(time.Minute), now))

	err := ValidateFuture(now, now)
	assert.True(t, httperr.IsCode(err, "appointment_in_past"), "now itself is not future")

	err = ValidateFuture(now.Add(-time.Minute), now)
	assert.True(t, httperr.IsCode(err, "appointment_in_past"))
}

func TestValidateCancellable(t *testing.T) {
	now := time.Date(2027, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateCancellable(now.Add(2*time.Hour), now), "exactly the window is allowed")
	assert.NoError(t, ValidateCancellable(now.Add(3*time.Hour), now))

	err := ValidateCancellable(now.Add(2*time.Hour-time.Minute), now)
	assert.True(t, httperr.IsCode(err, "too_close_to_cancel"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
}
