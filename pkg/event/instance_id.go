package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInstanceID = errors.New("invalid event id")

// uuidLength is the canonical textual UUID length. Event ids are UUIDs, so a
// recurrence instance id is always the source id followed by "-YYYY-MM-DD".
// Both UUIDs and dates contain hyphens, which makes split-on-hyphen decoding
// ambiguous; decoding therefore always takes a fixed-width prefix.
const uuidLength = 36

// InstanceID derives the synthetic id of a recurrence instance from the
// source event id and the occurrence date.
func InstanceID(sourceID string, date time.Time) string {
	return sourceID + "-" + date.Format(DateLayout)
}

// SourceEventID resolves an event id, synthetic or not, back to the id of the
// stored event. Plain UUIDs are returned unchanged; instance ids are stripped
// of their date suffix. Malformed ids yield ErrInvalidInstanceID.
func SourceEventID(id string) (string, error) {
	sourceID, _, err := splitInstanceID(id)
	return sourceID, err
}

// IsInstanceID reports whether id addresses a recurrence instance rather than
// a stored event.
func IsInstanceID(id string) bool {
	sourceID, _, err := splitInstanceID(id)
	return err == nil && sourceID != id
}

func splitInstanceID(id string) (string, time.Time, error) {
	if len(id) < uuidLength {
		return "", time.Time{}, fmt.Errorf("%w: %q is shorter than a UUID", ErrInvalidInstanceID, id)
	}
	sourceID := id[:uuidLength]
	if _, err := uuid.Parse(sourceID); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %q does not start with a UUID", ErrInvalidInstanceID, id)
	}
	if len(id) == uuidLength {
		return sourceID, time.Time{}, nil
	}

	suffix := id[uuidLength:]
	if suffix[0] != '-' {
		return "", time.Time{}, fmt.Errorf("%w: unexpected suffix in %q", ErrInvalidInstanceID, id)
	}
	date, err := time.Parse(DateLayout, suffix[1:])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %q has no valid occurrence date", ErrInvalidInstanceID, id)
	}
	return sourceID, date, nil
}
