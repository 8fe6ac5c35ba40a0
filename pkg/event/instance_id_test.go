package event

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceIDRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := uuid.NewString()
		d := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*17)

		decoded, err := SourceEventID(InstanceID(id, d))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestSourceEventIDPlainUUID(t *testing.T) {
	id := uuid.NewString()

	decoded, err := SourceEventID(id)

	require.NoError(t, err)
	assert.Equal(t, id, decoded)
	assert.False(t, IsInstanceID(id))
}

func TestIsInstanceID(t *testing.T) {
	id := InstanceID(uuid.NewString(), time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

	assert.True(t, IsInstanceID(id))
}

func TestSourceEventIDMalformed(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"shorter than a UUID", "1234-5678"},
		{"not a UUID prefix", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz-2024-01-01"},
		{"missing separator", uuid.NewString() + "2024-01-01"},
		{"suffix is not a date", uuid.NewString() + "-not-a-date1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SourceEventID(tt.id)
			assert.ErrorIs(t, err, ErrInvalidInstanceID)
		})
	}
}
